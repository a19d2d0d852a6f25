package model

import "time"

// User профиль пользователя, хранится на бекенде
type User struct {
	ID                   string    `json:"id,omitempty"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Currency             string    `json:"currency"` // код валюты, например "BRL" или "USD"
	NotificationsEnabled bool      `json:"notifications_enabled"`
	CreatedAt            time.Time `json:"created_at,omitempty"`
}
