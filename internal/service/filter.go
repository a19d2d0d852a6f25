package service

import (
	"sort"
	"strings"

	"github.com/ivanoskov/subscription_bot/internal/model"
)

// Ключи сортировки списка подписок
const (
	SortByServiceName     = "service_name"
	SortByAmount          = "amount"
	SortByNextBillingDate = "next_billing_date"
	SortByCreatedAt       = "created_at"
)

// ListOptions клиентские фильтры и сортировка списка подписок.
// Пустое значение фильтра означает "все".
type ListOptions struct {
	Search       string
	Status       string
	CategoryID   string
	BillingCycle string
	SortKey      string
	Descending   bool
}

// FilterSubscriptions применяет фильтры и сортировку к копии списка,
// исходный список не меняется
func FilterSubscriptions(subs []model.Subscription, opts ListOptions) []model.Subscription {
	filtered := make([]model.Subscription, 0, len(subs))
	search := strings.ToLower(opts.Search)

	for _, sub := range subs {
		if search != "" && !strings.Contains(strings.ToLower(sub.ServiceName), search) {
			continue
		}
		if opts.Status != "" && sub.Status != opts.Status {
			continue
		}
		if opts.CategoryID != "" && sub.CategoryID != opts.CategoryID {
			continue
		}
		if opts.BillingCycle != "" && sub.BillingCycle != opts.BillingCycle {
			continue
		}
		filtered = append(filtered, sub)
	}

	sortKey := opts.SortKey
	if sortKey == "" {
		sortKey = SortByNextBillingDate
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		var less bool
		switch sortKey {
		case SortByServiceName:
			less = strings.ToLower(a.ServiceName) < strings.ToLower(b.ServiceName)
		case SortByAmount:
			// Сравниваем месячный эквивалент, чтобы годовые и месячные были сопоставимы
			less = MonthlyAmount(a) < MonthlyAmount(b)
		case SortByCreatedAt:
			less = a.CreatedAt.Before(b.CreatedAt)
		default:
			less = a.NextBillingDate.Before(b.NextBillingDate)
		}
		if opts.Descending {
			return !less && !equalByKey(a, b, sortKey)
		}
		return less
	})
	return filtered
}

func equalByKey(a, b model.Subscription, sortKey string) bool {
	switch sortKey {
	case SortByServiceName:
		return strings.EqualFold(a.ServiceName, b.ServiceName)
	case SortByAmount:
		return MonthlyAmount(a) == MonthlyAmount(b)
	case SortByCreatedAt:
		return a.CreatedAt.Equal(b.CreatedAt)
	default:
		return a.NextBillingDate.Equal(b.NextBillingDate)
	}
}
