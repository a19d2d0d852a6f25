package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/ivanoskov/subscription_bot/internal/model"
)

// Режимы фильтра уведомлений
const (
	AlertFilterAll    = "all"
	AlertFilterUnread = "unread"
	AlertFilterRead   = "read"
)

// FilterAlerts возвращает уведомления под выбранный фильтр, всегда по убыванию
// даты создания. Исходный список не меняется.
func FilterAlerts(alerts []model.Alert, filter string) []model.Alert {
	filtered := make([]model.Alert, 0, len(alerts))
	for _, alert := range alerts {
		switch filter {
		case AlertFilterRead:
			if !alert.IsRead {
				continue
			}
		case AlertFilterUnread:
			if alert.IsRead {
				continue
			}
		}
		filtered = append(filtered, alert)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered
}

// CountUnread количество непрочитанных уведомлений
func CountUnread(alerts []model.Alert) int {
	count := 0
	for _, alert := range alerts {
		if !alert.IsRead {
			count++
		}
	}
	return count
}

// MarkAllAsRead отмечает прочитанными все непрочитанные уведомления по одному.
// Операция не атомарна: при ошибке уже отмеченные остаются прочитанными,
// возвращается их количество и ошибка первого неудавшегося вызова.
func (t *Tracker) MarkAllAsRead(ctx context.Context, token string, alerts []model.Alert) (int, error) {
	marked := 0
	for _, alert := range alerts {
		if alert.IsRead {
			continue
		}
		if err := t.api.MarkAlertRead(ctx, token, alert.ID); err != nil {
			return marked, fmt.Errorf("failed to mark alert %s: %w", alert.ID, err)
		}
		marked++
	}
	return marked, nil
}
