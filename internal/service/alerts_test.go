package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/subscription_bot/internal/model"
)

func testAlerts() []model.Alert {
	base := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	return []model.Alert{
		{ID: "a1", Message: "старое", IsRead: true, CreatedAt: base},
		{ID: "a2", Message: "среднее", IsRead: false, CreatedAt: base.Add(time.Hour)},
		{ID: "a3", Message: "новое", IsRead: false, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestFilterAlerts(t *testing.T) {
	alerts := testAlerts()

	all := FilterAlerts(alerts, AlertFilterAll)
	unread := FilterAlerts(alerts, AlertFilterUnread)
	read := FilterAlerts(alerts, AlertFilterRead)

	require.Len(t, all, 3)
	require.Len(t, unread, 2)
	require.Len(t, read, 1)

	// Всегда по убыванию даты создания
	assert.Equal(t, "a3", all[0].ID)
	assert.Equal(t, "a1", all[2].ID)
	assert.Equal(t, "a3", unread[0].ID)

	// Фильтры без потерь: read и unread вместе дают all
	assert.Equal(t, len(all), len(read)+len(unread))

	// Исходный список не изменился
	assert.Equal(t, "a1", alerts[0].ID)
}

func TestFilterAlertsIdempotent(t *testing.T) {
	alerts := testAlerts()

	first := FilterAlerts(alerts, AlertFilterUnread)
	second := FilterAlerts(alerts, AlertFilterUnread)
	assert.Equal(t, first, second)
}

func TestCountUnread(t *testing.T) {
	assert.Equal(t, 2, CountUnread(testAlerts()))
	assert.Zero(t, CountUnread(nil))
}

func TestMarkAllAsRead(t *testing.T) {
	apiMock := &APIMock{}
	tracker := newTestTracker(apiMock)
	alerts := testAlerts()

	apiMock.On("MarkAlertRead", mock.Anything, "token", "a2").Return(nil)
	apiMock.On("MarkAlertRead", mock.Anything, "token", "a3").Return(nil)

	marked, err := tracker.MarkAllAsRead(context.Background(), "token", alerts)
	require.NoError(t, err)
	assert.Equal(t, 2, marked)
	// Уже прочитанное a1 не трогаем
	apiMock.AssertNumberOfCalls(t, "MarkAlertRead", 2)
}

func TestMarkAllAsReadStopsOnFirstFailure(t *testing.T) {
	apiMock := &APIMock{}
	tracker := newTestTracker(apiMock)

	base := time.Now()
	alerts := []model.Alert{
		{ID: "a1", IsRead: false, CreatedAt: base},
		{ID: "a2", IsRead: false, CreatedAt: base.Add(time.Hour)},
		{ID: "a3", IsRead: false, CreatedAt: base.Add(2 * time.Hour)},
	}

	apiMock.On("MarkAlertRead", mock.Anything, "token", "a1").Return(nil)
	apiMock.On("MarkAlertRead", mock.Anything, "token", "a2").Return(errors.New("boom"))

	marked, err := tracker.MarkAllAsRead(context.Background(), "token", alerts)
	require.Error(t, err)

	// Первый успел отметиться, второй упал, до третьего дело не дошло
	assert.Equal(t, 1, marked)
	apiMock.AssertNotCalled(t, "MarkAlertRead", mock.Anything, "token", "a3")
}
