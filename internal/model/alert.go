package model

import "time"

// Alert уведомление для пользователя
type Alert struct {
	ID        string    `json:"id,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
