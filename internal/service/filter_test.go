package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/subscription_bot/internal/model"
)

func testSubscriptions() []model.Subscription {
	day := func(d int) time.Time {
		return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
	}
	return []model.Subscription{
		{ID: "s1", CategoryID: "c1", ServiceName: "Netflix", Amount: 34.90, BillingCycle: model.BillingCycleMonthly, Status: model.SubscriptionStatusActive, NextBillingDate: day(20), CreatedAt: day(1)},
		{ID: "s2", CategoryID: "c1", ServiceName: "Spotify", Amount: 19.90, BillingCycle: model.BillingCycleMonthly, Status: model.SubscriptionStatusCanceled, NextBillingDate: day(5), CreatedAt: day(2)},
		{ID: "s3", CategoryID: "c2", ServiceName: "Notion", Amount: 240, BillingCycle: model.BillingCycleYearly, Status: model.SubscriptionStatusActive, NextBillingDate: day(10), CreatedAt: day(3)},
	}
}

func TestFilterSubscriptionsSearch(t *testing.T) {
	subs := testSubscriptions()

	filtered := FilterSubscriptions(subs, ListOptions{Search: "net"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "Netflix", filtered[0].ServiceName)

	// Исходный список не изменился
	assert.Len(t, subs, 3)
	assert.Equal(t, "s1", subs[0].ID)
}

func TestFilterSubscriptionsByStatusAndCycle(t *testing.T) {
	subs := testSubscriptions()

	active := FilterSubscriptions(subs, ListOptions{Status: model.SubscriptionStatusActive})
	assert.Len(t, active, 2)

	yearly := FilterSubscriptions(subs, ListOptions{BillingCycle: model.BillingCycleYearly})
	require.Len(t, yearly, 1)
	assert.Equal(t, "Notion", yearly[0].ServiceName)

	category := FilterSubscriptions(subs, ListOptions{CategoryID: "c1"})
	assert.Len(t, category, 2)
}

func TestFilterSubscriptionsSortByMonthlyAmount(t *testing.T) {
	subs := testSubscriptions()

	// Notion годовой: 240/12 = 20 в месяц, между Spotify и Netflix
	sorted := FilterSubscriptions(subs, ListOptions{SortKey: SortByAmount})
	require.Len(t, sorted, 3)
	assert.Equal(t, "Spotify", sorted[0].ServiceName)
	assert.Equal(t, "Notion", sorted[1].ServiceName)
	assert.Equal(t, "Netflix", sorted[2].ServiceName)

	descending := FilterSubscriptions(subs, ListOptions{SortKey: SortByAmount, Descending: true})
	assert.Equal(t, "Netflix", descending[0].ServiceName)
}

func TestFilterSubscriptionsDefaultSort(t *testing.T) {
	sorted := FilterSubscriptions(testSubscriptions(), ListOptions{})
	require.Len(t, sorted, 3)
	assert.Equal(t, "Spotify", sorted[0].ServiceName)
	assert.Equal(t, "Notion", sorted[1].ServiceName)
	assert.Equal(t, "Netflix", sorted[2].ServiceName)
}
