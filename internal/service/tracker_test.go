package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/subscription_bot/internal/api"
	"github.com/ivanoskov/subscription_bot/internal/model"
)

type APIMock struct{ mock.Mock }

func (m *APIMock) GetSummary(ctx context.Context, token string, period api.PeriodFilter) (*model.Summary, error) {
	args := m.Called(ctx, token, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Summary), args.Error(1)
}

func (m *APIMock) GetUpcoming(ctx context.Context, token string, period api.PeriodFilter) ([]model.UpcomingCharge, error) {
	args := m.Called(ctx, token, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UpcomingCharge), args.Error(1)
}

func (m *APIMock) ListSubscriptions(ctx context.Context, token string, filter api.SubscriptionFilter) ([]model.Subscription, error) {
	args := m.Called(ctx, token, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subscription), args.Error(1)
}

func (m *APIMock) ListCategories(ctx context.Context, token string) ([]model.Category, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *APIMock) ListCharges(ctx context.Context, token string, period api.PeriodFilter) ([]model.Charge, error) {
	args := m.Called(ctx, token, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Charge), args.Error(1)
}

func (m *APIMock) ListAlerts(ctx context.Context, token string) ([]model.Alert, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Alert), args.Error(1)
}

func (m *APIMock) MarkAlertRead(ctx context.Context, token, id string) error {
	return m.Called(ctx, token, id).Error(0)
}

func newTestTracker(apiMock *APIMock) *Tracker {
	return NewTracker(apiMock, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetDashboardPartialFailure(t *testing.T) {
	apiMock := &APIMock{}
	tracker := newTestTracker(apiMock)

	subs := []model.Subscription{
		{ServiceName: "Netflix", Amount: 34.90, BillingCycle: model.BillingCycleMonthly, Status: model.SubscriptionStatusActive},
	}
	alerts := []model.Alert{
		{ID: "a1", Message: "скоро списание", IsRead: false},
		{ID: "a2", Message: "оплачено", IsRead: true},
	}

	// Сводка недоступна, остальные части должны загрузиться
	apiMock.On("GetSummary", mock.Anything, "token", mock.Anything).Return(nil, errors.New("boom"))
	apiMock.On("ListSubscriptions", mock.Anything, "token", mock.Anything).Return(subs, nil)
	apiMock.On("GetUpcoming", mock.Anything, "token", mock.Anything).Return([]model.UpcomingCharge{}, nil)
	apiMock.On("ListAlerts", mock.Anything, "token").Return(alerts, nil)
	apiMock.On("ListCategories", mock.Anything, "token").Return([]model.Category{}, nil)

	dashboard, err := tracker.GetDashboard(context.Background(), "token", api.PeriodFilter{})
	require.NoError(t, err)

	assert.Zero(t, dashboard.Summary.TotalMonthly)
	assert.Len(t, dashboard.Subscriptions, 1)
	assert.Equal(t, 1, dashboard.UnreadAlerts)
	apiMock.AssertExpectations(t)
}

func TestGetReport(t *testing.T) {
	apiMock := &APIMock{}
	tracker := newTestTracker(apiMock)

	subs := []model.Subscription{
		{CategoryID: "c1", ServiceName: "Netflix", Amount: 34.90, BillingCycle: model.BillingCycleMonthly, Status: model.SubscriptionStatusActive},
	}
	charges := []model.Charge{
		{Amount: 34.90, ChargeDate: time.Now(), Status: model.ChargeStatusPaid},
	}
	categories := []model.Category{{ID: "c1", Name: "Streaming", Color: "#3B82F6"}}

	apiMock.On("ListSubscriptions", mock.Anything, "token", mock.Anything).Return(subs, nil)
	apiMock.On("ListCharges", mock.Anything, "token", mock.Anything).Return(charges, nil)
	apiMock.On("ListCategories", mock.Anything, "token").Return(categories, nil)

	report, err := tracker.GetReport(context.Background(), "token", api.PeriodFilter{})
	require.NoError(t, err)

	assert.Len(t, report.MonthlySpending, 12)
	assert.Len(t, report.Trend, 6)
	require.Len(t, report.Distribution, 1)
	assert.Equal(t, "Streaming", report.Distribution[0].Name)
	assert.InDelta(t, 34.90, report.TotalSpent, 1e-9)
	assert.InDelta(t, 418.80, report.AnnualProjection, 1e-6)
	assert.Equal(t, 1, report.CategoriesCount)
}

func TestGetReportFailsWithoutCharges(t *testing.T) {
	apiMock := &APIMock{}
	tracker := newTestTracker(apiMock)

	apiMock.On("ListSubscriptions", mock.Anything, "token", mock.Anything).Return([]model.Subscription{}, nil).Maybe()
	apiMock.On("ListCharges", mock.Anything, "token", mock.Anything).Return(nil, errors.New("boom"))

	_, err := tracker.GetReport(context.Background(), "token", api.PeriodFilter{})
	assert.Error(t, err)
}
