// Package service содержит клиентскую логику трекера подписок: сбор данных
// с бекенда и чистые функции агрегации для дашборда и отчётов.
package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivanoskov/subscription_bot/internal/api"
	"github.com/ivanoskov/subscription_bot/internal/model"
)

// API определяет нужную сервису часть клиента бекенда
type API interface {
	GetSummary(ctx context.Context, token string, period api.PeriodFilter) (*model.Summary, error)
	GetUpcoming(ctx context.Context, token string, period api.PeriodFilter) ([]model.UpcomingCharge, error)
	ListSubscriptions(ctx context.Context, token string, filter api.SubscriptionFilter) ([]model.Subscription, error)
	ListCategories(ctx context.Context, token string) ([]model.Category, error)
	ListCharges(ctx context.Context, token string, period api.PeriodFilter) ([]model.Charge, error)
	ListAlerts(ctx context.Context, token string) ([]model.Alert, error)
	MarkAlertRead(ctx context.Context, token, id string) error
}

// Tracker собирает данные бекенда в представления для бота
type Tracker struct {
	api API
	log *slog.Logger
}

// NewTracker создает новый экземпляр Tracker
func NewTracker(apiClient API, log *slog.Logger) *Tracker {
	return &Tracker{
		api: apiClient,
		log: log.With(slog.String("component", "tracker")),
	}
}

// Dashboard агрегированные данные главного экрана
type Dashboard struct {
	Summary       model.Summary
	Subscriptions []model.Subscription
	Upcoming      []model.UpcomingCharge
	Alerts        []model.Alert
	Categories    []model.Category
	UnreadAlerts  int
}

// CategoryStats распределение активных подписок по категориям
// в порядке первого появления
func (d *Dashboard) CategoryStats() []CategoryStat {
	return DashboardCategoryStats(d.Subscriptions, d.Categories)
}

// GetDashboard загружает части дашборда параллельно. Каждая часть независима:
// упавший запрос оставляет свой кусок пустым и не мешает остальным.
func (t *Tracker) GetDashboard(ctx context.Context, token string, period api.PeriodFilter) (*Dashboard, error) {
	dashboard := &Dashboard{}

	// Предстоящие списания показываются на неделю вперёд
	now := time.Now()
	weekAhead := now.AddDate(0, 0, 7)
	upcomingPeriod := api.PeriodFilter{Initial: &now, Final: &weekAhead}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := t.api.GetSummary(gctx, token, period)
		if err != nil {
			t.log.Warn("failed to load summary", slog.Any("error", err))
			return nil
		}
		dashboard.Summary = *summary
		return nil
	})
	g.Go(func() error {
		subs, err := t.api.ListSubscriptions(gctx, token, api.SubscriptionFilter{Status: model.SubscriptionStatusActive})
		if err != nil {
			t.log.Warn("failed to load subscriptions", slog.Any("error", err))
			return nil
		}
		dashboard.Subscriptions = subs
		return nil
	})
	g.Go(func() error {
		upcoming, err := t.api.GetUpcoming(gctx, token, upcomingPeriod)
		if err != nil {
			t.log.Warn("failed to load upcoming charges", slog.Any("error", err))
			return nil
		}
		dashboard.Upcoming = upcoming
		return nil
	})
	g.Go(func() error {
		alerts, err := t.api.ListAlerts(gctx, token)
		if err != nil {
			t.log.Warn("failed to load alerts", slog.Any("error", err))
			return nil
		}
		dashboard.Alerts = alerts
		return nil
	})
	g.Go(func() error {
		categories, err := t.api.ListCategories(gctx, token)
		if err != nil {
			t.log.Warn("failed to load categories", slog.Any("error", err))
			return nil
		}
		dashboard.Categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	dashboard.UnreadAlerts = CountUnread(dashboard.Alerts)
	return dashboard, nil
}

// Report данные страницы отчётов
type Report struct {
	MonthlySpending  []MonthBucket
	Distribution     []CategoryStat
	Trend            []TrendBucket
	Top              []TopSubscription
	AnnualProjection float64
	TotalSpent       float64
	CategoriesCount  int
}

// GetReport загружает подписки и списания за период и считает отчёт.
// Без подписок и списаний отчёт не строится, категории же опциональны:
// без них суммы просто попадают в "Без категории".
func (t *Tracker) GetReport(ctx context.Context, token string, period api.PeriodFilter) (*Report, error) {
	var (
		subs    []model.Subscription
		charges []model.Charge
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subs, err = t.api.ListSubscriptions(gctx, token, api.SubscriptionFilter{Period: period})
		return err
	})
	g.Go(func() error {
		var err error
		charges, err = t.api.ListCharges(gctx, token, period)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	categories, err := t.api.ListCategories(ctx, token)
	if err != nil {
		t.log.Warn("failed to load categories", slog.Any("error", err))
		categories = nil
	}

	return buildReport(subs, charges, categories, time.Now()), nil
}

func buildReport(subs []model.Subscription, charges []model.Charge, categories []model.Category, today time.Time) *Report {
	return &Report{
		MonthlySpending:  MonthlySpending(charges, today),
		Distribution:     CategoryDistribution(subs, categories),
		Trend:            SpendingTrend(charges, subs, today),
		Top:              TopSubscriptions(subs, 5),
		AnnualProjection: AnnualProjection(subs),
		TotalSpent:       TotalSpent(charges),
		CategoriesCount:  ActiveCategoriesCount(subs),
	}
}
