package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/subscription_bot/internal/model"
)

func TestMonthlyAmount(t *testing.T) {
	tests := []struct {
		name string
		sub  model.Subscription
		want float64
	}{
		{
			name: "monthly остаётся как есть",
			sub:  model.Subscription{Amount: 34.90, BillingCycle: model.BillingCycleMonthly},
			want: 34.90,
		},
		{
			name: "yearly делится на 12",
			sub:  model.Subscription{Amount: 120, BillingCycle: model.BillingCycleYearly},
			want: 10,
		},
		{
			name: "неизвестный цикл считается месячным",
			sub:  model.Subscription{Amount: 50, BillingCycle: "weekly"},
			want: 50,
		},
		{
			name: "пустой цикл считается месячным",
			sub:  model.Subscription{Amount: 50},
			want: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MonthlyAmount(tt.sub), 1e-9)
		})
	}
}

func TestCategoryDistribution(t *testing.T) {
	categories := []model.Category{
		{ID: "c1", Name: "Streaming", Color: "#3B82F6"},
		{ID: "c2", Name: "Work", Color: "#10B981"},
	}
	subs := []model.Subscription{
		{CategoryID: "c2", ServiceName: "Notion", Amount: 45.20, BillingCycle: model.BillingCycleMonthly},
		{CategoryID: "c1", ServiceName: "Netflix", Amount: 34.90, BillingCycle: model.BillingCycleMonthly},
		{CategoryID: "c1", ServiceName: "Spotify", Amount: 19.90, BillingCycle: model.BillingCycleMonthly},
	}

	stats := CategoryDistribution(subs, categories)
	require.Len(t, stats, 2)

	// Для отчётов — по убыванию суммы
	assert.Equal(t, "Streaming", stats[0].Name)
	assert.InDelta(t, 54.80, stats[0].Total, 1e-9)
	assert.InDelta(t, 54.8, stats[0].Percentage, 0.01)
	assert.Equal(t, "Work", stats[1].Name)
	assert.InDelta(t, 45.20, stats[1].Total, 1e-9)
	assert.InDelta(t, 45.2, stats[1].Percentage, 0.01)

	totalPercent := stats[0].Percentage + stats[1].Percentage
	assert.InDelta(t, 100, totalPercent, 1e-9)
}

func TestDashboardCategoryStatsKeepsInsertionOrder(t *testing.T) {
	categories := []model.Category{
		{ID: "c1", Name: "Streaming"},
		{ID: "c2", Name: "Work"},
	}
	subs := []model.Subscription{
		{CategoryID: "c2", ServiceName: "Notion", Amount: 10, BillingCycle: model.BillingCycleMonthly},
		{CategoryID: "c1", ServiceName: "Netflix", Amount: 100, BillingCycle: model.BillingCycleMonthly},
	}

	stats := DashboardCategoryStats(subs, categories)
	require.Len(t, stats, 2)

	// Порядок первого появления, а не сумма
	assert.Equal(t, "Work", stats[0].Name)
	assert.Equal(t, "Streaming", stats[1].Name)
}

func TestCategoryDistributionEmptyTotal(t *testing.T) {
	subs := []model.Subscription{
		{CategoryID: "c1", Amount: 0, BillingCycle: model.BillingCycleMonthly},
	}
	assert.Empty(t, CategoryDistribution(subs, nil))
	assert.Empty(t, CategoryDistribution(nil, nil))
}

func TestCategoryDistributionDeletedCategory(t *testing.T) {
	subs := []model.Subscription{
		{CategoryID: "gone", ServiceName: "Netflix", Amount: 30, BillingCycle: model.BillingCycleMonthly},
	}

	stats := CategoryDistribution(subs, nil)
	require.Len(t, stats, 1)
	assert.Equal(t, FallbackCategoryName, stats[0].Name)
	assert.Equal(t, FallbackCategoryColor, stats[0].Color)
	assert.InDelta(t, 100, stats[0].Percentage, 1e-9)
}

func TestMonthlySpendingAlwaysTwelveBuckets(t *testing.T) {
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	buckets := MonthlySpending(nil, today)
	require.Len(t, buckets, 12)
	for _, bucket := range buckets {
		assert.Zero(t, bucket.Amount)
	}

	// Первый бакет — апрель прошлого года, последний — текущий месяц
	assert.Equal(t, "Апр", buckets[0].Month)
	assert.Equal(t, "Мар", buckets[11].Month)
}

func TestMonthlySpendingCountsOnlyPaid(t *testing.T) {
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	charges := []model.Charge{
		{Amount: 30, ChargeDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), Status: model.ChargeStatusPaid},
		{Amount: 20, ChargeDate: time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC), Status: model.ChargeStatusPaid},
		{Amount: 99, ChargeDate: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), Status: model.ChargeStatusPending},
		{Amount: 15, ChargeDate: time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), Status: model.ChargeStatusPaid},
		// Слишком старое списание не попадает ни в один бакет
		{Amount: 77, ChargeDate: time.Date(2022, time.March, 10, 0, 0, 0, 0, time.UTC), Status: model.ChargeStatusPaid},
	}

	buckets := MonthlySpending(charges, today)
	require.Len(t, buckets, 12)
	assert.InDelta(t, 50, buckets[11].Amount, 1e-9)
	assert.InDelta(t, 15, buckets[10].Amount, 1e-9)
	assert.Zero(t, buckets[0].Amount)
}

func TestSpendingTrend(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	subs := []model.Subscription{
		{Amount: 120, BillingCycle: model.BillingCycleYearly, Status: model.SubscriptionStatusActive},
		{Amount: 25, BillingCycle: model.BillingCycleMonthly, Status: model.SubscriptionStatusActive},
		{Amount: 99, BillingCycle: model.BillingCycleMonthly, Status: model.SubscriptionStatusCanceled},
	}
	charges := []model.Charge{
		{Amount: 35, ChargeDate: time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC), Status: model.ChargeStatusPaid},
	}

	trend := SpendingTrend(charges, subs, today)
	require.Len(t, trend, 6)

	// Средняя линия плоская: текущая месячная сумма активных подписок
	for _, point := range trend {
		assert.InDelta(t, 35, point.Average, 1e-9)
	}
	assert.InDelta(t, 35, trend[4].Actual, 1e-9)
	assert.Zero(t, trend[5].Actual)
}

func TestAnnualProjection(t *testing.T) {
	subs := []model.Subscription{
		{Amount: 120, BillingCycle: model.BillingCycleYearly, Status: model.SubscriptionStatusActive},
		{Amount: 25, BillingCycle: model.BillingCycleMonthly, Status: model.SubscriptionStatusActive},
		{Amount: 50, BillingCycle: model.BillingCycleMonthly, Status: model.SubscriptionStatusCanceled},
	}
	assert.InDelta(t, 420, AnnualProjection(subs), 1e-9)
}

func TestTopSubscriptions(t *testing.T) {
	subs := []model.Subscription{
		{ServiceName: "A", Amount: 10, BillingCycle: model.BillingCycleMonthly, Status: model.SubscriptionStatusActive},
		{ServiceName: "B", Amount: 240, BillingCycle: model.BillingCycleYearly, Status: model.SubscriptionStatusActive},
		{ServiceName: "C", Amount: 15, BillingCycle: model.BillingCycleMonthly, Status: model.SubscriptionStatusActive},
		{ServiceName: "D", Amount: 99, BillingCycle: model.BillingCycleMonthly, Status: model.SubscriptionStatusCanceled},
	}

	top := TopSubscriptions(subs, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "B", top[0].ServiceName)
	assert.InDelta(t, 20, top[0].MonthlyAmount, 1e-9)
	assert.Equal(t, "C", top[1].ServiceName)
}

func TestNextBillingDate(t *testing.T) {
	date := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	monthly := model.Subscription{BillingCycle: model.BillingCycleMonthly, NextBillingDate: date}
	assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), NextBillingDate(monthly))

	yearly := model.Subscription{BillingCycle: model.BillingCycleYearly, NextBillingDate: date}
	assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), NextBillingDate(yearly))
}
