package model

import "time"

// Статусы списания
const (
	ChargeStatusPending = "pending"
	ChargeStatusPaid    = "paid"
)

// Charge отдельное списание по подписке
type Charge struct {
	ID             string    `json:"id,omitempty"`
	SubscriptionID string    `json:"subscription_id"`
	Amount         float64   `json:"amount"`
	ChargeDate     time.Time `json:"charge_date"`
	Status         string    `json:"status"` // pending или paid
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// UpcomingCharge предстоящее списание из сводки дашборда
type UpcomingCharge struct {
	ID             string    `json:"id"`
	SubscriptionID string    `json:"subscription_id"`
	ServiceName    string    `json:"service_name"`
	Amount         float64   `json:"amount"`
	ChargeDate     time.Time `json:"charge_date"`
}
