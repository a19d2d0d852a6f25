package model

import "time"

// Category категория подписок с цветом для отображения
type Category struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Color     string    `json:"color"` // hex-строка, например "#3B82F6"
	CreatedAt time.Time `json:"created_at,omitempty"`
}
