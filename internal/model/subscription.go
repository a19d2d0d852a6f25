package model

import "time"

// Циклы оплаты подписки
const (
	BillingCycleMonthly = "monthly"
	BillingCycleYearly  = "yearly"
)

// Статусы подписки
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
)

// Subscription подписка на сервис
type Subscription struct {
	ID              string    `json:"id,omitempty"`
	CategoryID      string    `json:"category_id"`
	ServiceName     string    `json:"service_name"`
	Amount          float64   `json:"amount"`
	BillingCycle    string    `json:"billing_cycle"` // monthly или yearly
	NextBillingDate time.Time `json:"next_billing_date"`
	Status          string    `json:"status"` // active или canceled
	CreatedAt       time.Time `json:"created_at,omitempty"`
}
