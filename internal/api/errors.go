package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse бекенд вернул успешный статус, но тело не разобралось
var ErrMalformedResponse = errors.New("malformed response body")

// APIError ошибка, возвращённая бекендом вместе с HTTP-статусом
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// IsUnauthorized true, если бекенд отклонил токен
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// UserMessage возвращает текст ошибки бекенда, пригодный для показа пользователю
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return ""
}
