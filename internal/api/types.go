package api

import (
	"net/url"
	"time"

	"github.com/ivanoskov/subscription_bot/internal/model"
)

// LoginRequest данные для входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest данные для регистрации
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse ответ бекенда на вход или регистрацию
type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// UpdateProfileRequest изменяемые поля профиля
type UpdateProfileRequest struct {
	Name                 string `json:"name" validate:"required,min=2"`
	Currency             string `json:"currency" validate:"required,len=3"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

// CategoryRequest данные для создания или изменения категории
type CategoryRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Color string `json:"color" validate:"required,hexcolor"`
}

// SubscriptionRequest данные для создания или изменения подписки
type SubscriptionRequest struct {
	CategoryID      string  `json:"category_id" validate:"required"`
	ServiceName     string  `json:"service_name" validate:"required,min=2"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	BillingCycle    string  `json:"billing_cycle" validate:"required,oneof=monthly yearly"`
	NextBillingDate string  `json:"next_billing_date" validate:"required,datetime=2006-01-02"`
}

// PeriodFilter фильтр по периоду, сериализуется в initial_period/final_period
type PeriodFilter struct {
	Initial *time.Time
	Final   *time.Time
}

func (f PeriodFilter) query() url.Values {
	values := url.Values{}
	if f.Initial != nil {
		values.Set("initial_period", f.Initial.Format("2006-01-02"))
	}
	if f.Final != nil {
		values.Set("final_period", f.Final.Format("2006-01-02"))
	}
	return values
}

// SubscriptionFilter серверный фильтр списка подписок
type SubscriptionFilter struct {
	Status string
	Period PeriodFilter
}

func (f SubscriptionFilter) query() url.Values {
	values := f.Period.query()
	if f.Status != "" {
		values.Set("status", f.Status)
	}
	return values
}
