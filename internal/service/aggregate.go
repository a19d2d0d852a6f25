package service

import (
	"sort"
	"time"

	"github.com/ivanoskov/subscription_bot/internal/model"
)

// Подстановка для подписок, ссылающихся на удалённую категорию
const (
	FallbackCategoryName  = "Без категории"
	FallbackCategoryColor = "#8B5CF6"
)

var shortMonthNames = []string{
	"Янв", "Фев", "Мар", "Апр", "Май", "Июн",
	"Июл", "Авг", "Сен", "Окт", "Ноя", "Дек",
}

// CategoryStat сумма и доля одной категории
type CategoryStat struct {
	Name       string
	Color      string
	Total      float64
	Percentage float64
}

// MonthBucket сумма оплаченных списаний за один календарный месяц
type MonthBucket struct {
	Month  string
	Amount float64
}

// TrendBucket точка тренда: фактические траты месяца против средней месячной суммы
type TrendBucket struct {
	Month   string
	Actual  float64
	Average float64
}

// TopSubscription подписка в топе по месячной стоимости
type TopSubscription struct {
	ServiceName   string
	MonthlyAmount float64
}

// MonthlyAmount приводит стоимость подписки к месячной: годовая делится на 12.
// Неизвестный цикл считается месячным.
func MonthlyAmount(sub model.Subscription) float64 {
	if sub.BillingCycle == model.BillingCycleYearly {
		return sub.Amount / 12
	}
	return sub.Amount
}

// aggregateByCategory группирует подписки по категориям в порядке первого появления.
// Если общая месячная сумма нулевая, распределение пустое.
func aggregateByCategory(subs []model.Subscription, categories []model.Category) []CategoryStat {
	byID := make(map[string]model.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	index := make(map[string]int)
	stats := make([]CategoryStat, 0)
	grandTotal := 0.0

	for _, sub := range subs {
		name := FallbackCategoryName
		color := FallbackCategoryColor
		if cat, ok := byID[sub.CategoryID]; ok {
			name = cat.Name
			if cat.Color != "" {
				color = cat.Color
			}
		}

		amount := MonthlyAmount(sub)
		grandTotal += amount

		if i, seen := index[name]; seen {
			stats[i].Total += amount
		} else {
			index[name] = len(stats)
			stats = append(stats, CategoryStat{Name: name, Color: color, Total: amount})
		}
	}

	if grandTotal == 0 {
		return nil
	}
	for i := range stats {
		stats[i].Percentage = stats[i].Total / grandTotal * 100
	}
	return stats
}

// DashboardCategoryStats распределение по категориям для дашборда,
// порядок — по первому появлению категории в списке подписок
func DashboardCategoryStats(subs []model.Subscription, categories []model.Category) []CategoryStat {
	return aggregateByCategory(subs, categories)
}

// CategoryDistribution распределение по категориям для отчётов,
// отсортировано по убыванию суммы
func CategoryDistribution(subs []model.Subscription, categories []model.Category) []CategoryStat {
	stats := aggregateByCategory(subs, categories)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Total > stats[j].Total
	})
	return stats
}

// monthlyBuckets раскладывает оплаченные списания по последним n календарным месяцам.
// Длина результата всегда ровно n, месяцы без списаний дают ноль.
func monthlyBuckets(charges []model.Charge, today time.Time, n int) []MonthBucket {
	buckets := make([]MonthBucket, 0, n)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := n - 1; i >= 0; i-- {
		month := firstOfMonth.AddDate(0, -i, 0)

		total := 0.0
		for _, charge := range charges {
			if charge.Status != model.ChargeStatusPaid {
				continue
			}
			if charge.ChargeDate.Year() == month.Year() && charge.ChargeDate.Month() == month.Month() {
				total += charge.Amount
			}
		}

		buckets = append(buckets, MonthBucket{
			Month:  shortMonthNames[month.Month()-1],
			Amount: total,
		})
	}
	return buckets
}

// MonthlySpending траты по месяцам за последние 12 месяцев
func MonthlySpending(charges []model.Charge, today time.Time) []MonthBucket {
	return monthlyBuckets(charges, today, 12)
}

// SpendingTrend тренд за последние 6 месяцев. Средняя линия — текущая месячная
// сумма активных подписок, одинаковая для всех месяцев: исторический состав
// подписок не восстанавливается, это осознанное упрощение.
func SpendingTrend(charges []model.Charge, subs []model.Subscription, today time.Time) []TrendBucket {
	average := ActiveMonthlyTotal(subs)

	buckets := monthlyBuckets(charges, today, 6)
	trend := make([]TrendBucket, 0, len(buckets))
	for _, bucket := range buckets {
		trend = append(trend, TrendBucket{
			Month:   bucket.Month,
			Actual:  bucket.Amount,
			Average: average,
		})
	}
	return trend
}

// ActiveMonthlyTotal суммарная месячная стоимость активных подписок
func ActiveMonthlyTotal(subs []model.Subscription) float64 {
	total := 0.0
	for _, sub := range subs {
		if sub.Status == model.SubscriptionStatusActive {
			total += MonthlyAmount(sub)
		}
	}
	return total
}

// AnnualProjection годовая проекция трат по активным подпискам
func AnnualProjection(subs []model.Subscription) float64 {
	return ActiveMonthlyTotal(subs) * 12
}

// TopSubscriptions активные подписки с наибольшей месячной стоимостью
func TopSubscriptions(subs []model.Subscription, limit int) []TopSubscription {
	top := make([]TopSubscription, 0)
	for _, sub := range subs {
		if sub.Status != model.SubscriptionStatusActive {
			continue
		}
		top = append(top, TopSubscription{
			ServiceName:   sub.ServiceName,
			MonthlyAmount: MonthlyAmount(sub),
		})
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].MonthlyAmount > top[j].MonthlyAmount
	})

	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// TotalSpent сумма всех списаний за период
func TotalSpent(charges []model.Charge) float64 {
	total := 0.0
	for _, charge := range charges {
		total += charge.Amount
	}
	return total
}

// ActiveCategoriesCount количество категорий, на которые ссылается хотя бы одна подписка
func ActiveCategoriesCount(subs []model.Subscription) int {
	seen := make(map[string]struct{})
	for _, sub := range subs {
		seen[sub.CategoryID] = struct{}{}
	}
	return len(seen)
}

// NextBillingDate дата оплаты после регистрации списания: плюс календарный
// месяц для monthly и плюс год для yearly. Считается только для предпросмотра,
// авторитетный перенос делает бекенд.
func NextBillingDate(sub model.Subscription) time.Time {
	if sub.BillingCycle == model.BillingCycleYearly {
		return sub.NextBillingDate.AddDate(1, 0, 0)
	}
	return sub.NextBillingDate.AddDate(0, 1, 0)
}
