// Package api реализует типизированный клиент REST-бекенда трекера подписок.
// Все запросы, кроме входа и регистрации, подписываются bearer-токеном.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ivanoskov/subscription_bot/internal/model"
)

// Client клиент REST-бекенда
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент бекенда с таймаутом на каждый запрос
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, query url.Values, body any) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, &buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do выполняет запрос и разбирает ответ. Не-2xx статус превращается в *APIError,
// неразбираемое тело успешного ответа — в ErrMalformedResponse, а не в пустой список.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// Login выполняет вход и возвращает токен вместе с профилем
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	httpReq, err := c.newRequest(ctx, http.MethodPost, "/auth/login", "", nil, req)
	if err != nil {
		return nil, err
	}
	var auth AuthResponse
	if err := c.do(httpReq, &auth); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &auth, nil
}

// Register регистрирует пользователя и сразу возвращает токен
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	httpReq, err := c.newRequest(ctx, http.MethodPost, "/auth/register", "", nil, req)
	if err != nil {
		return nil, err
	}
	var auth AuthResponse
	if err := c.do(httpReq, &auth); err != nil {
		return nil, fmt.Errorf("register failed: %w", err)
	}
	return &auth, nil
}

// GetProfile возвращает профиль текущего пользователя
func (c *Client) GetProfile(ctx context.Context, token string) (*model.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users/profile", token, nil, nil)
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := c.do(req, &user); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &user, nil
}

// UpdateProfile сохраняет изменения профиля
func (c *Client) UpdateProfile(ctx context.Context, token string, req UpdateProfileRequest) error {
	httpReq, err := c.newRequest(ctx, http.MethodPut, "/users/profile", token, nil, req)
	if err != nil {
		return err
	}
	if err := c.do(httpReq, nil); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// ListCategories возвращает категории пользователя
func (c *Client) ListCategories(ctx context.Context, token string) ([]model.Category, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/categories", token, nil, nil)
	if err != nil {
		return nil, err
	}
	var categories []model.Category
	if err := c.do(req, &categories); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory создаёт категорию
func (c *Client) CreateCategory(ctx context.Context, token string, req CategoryRequest) (*model.Category, error) {
	httpReq, err := c.newRequest(ctx, http.MethodPost, "/categories", token, nil, req)
	if err != nil {
		return nil, err
	}
	var category model.Category
	if err := c.do(httpReq, &category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory изменяет категорию
func (c *Client) UpdateCategory(ctx context.Context, token, id string, req CategoryRequest) error {
	httpReq, err := c.newRequest(ctx, http.MethodPut, "/categories/"+id, token, nil, req)
	if err != nil {
		return err
	}
	if err := c.do(httpReq, nil); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// DeleteCategory удаляет категорию
func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	httpReq, err := c.newRequest(ctx, http.MethodDelete, "/categories/"+id, token, nil, nil)
	if err != nil {
		return err
	}
	if err := c.do(httpReq, nil); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// ListSubscriptions возвращает подписки с учётом серверного фильтра
func (c *Client) ListSubscriptions(ctx context.Context, token string, filter SubscriptionFilter) ([]model.Subscription, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/subscriptions", token, filter.query(), nil)
	if err != nil {
		return nil, err
	}
	var subscriptions []model.Subscription
	if err := c.do(req, &subscriptions); err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subscriptions, nil
}

// GetSubscription возвращает подписку по ID
func (c *Client) GetSubscription(ctx context.Context, token, id string) (*model.Subscription, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/subscriptions/"+id, token, nil, nil)
	if err != nil {
		return nil, err
	}
	var subscription model.Subscription
	if err := c.do(req, &subscription); err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &subscription, nil
}

// CreateSubscription создаёт подписку
func (c *Client) CreateSubscription(ctx context.Context, token string, req SubscriptionRequest) (*model.Subscription, error) {
	httpReq, err := c.newRequest(ctx, http.MethodPost, "/subscriptions", token, nil, req)
	if err != nil {
		return nil, err
	}
	var subscription model.Subscription
	if err := c.do(httpReq, &subscription); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return &subscription, nil
}

// UpdateSubscription изменяет подписку
func (c *Client) UpdateSubscription(ctx context.Context, token, id string, req SubscriptionRequest) error {
	httpReq, err := c.newRequest(ctx, http.MethodPut, "/subscriptions/"+id, token, nil, req)
	if err != nil {
		return err
	}
	if err := c.do(httpReq, nil); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}

// CancelSubscription отменяет подписку, дальнейшие списания по ней не создаются
func (c *Client) CancelSubscription(ctx context.Context, token, id string) error {
	httpReq, err := c.newRequest(ctx, http.MethodPatch, "/subscriptions/"+id+"/cancel", token, nil, nil)
	if err != nil {
		return err
	}
	if err := c.do(httpReq, nil); err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	return nil
}

// CreateCharge регистрирует списание по подписке, бекенд сам сдвигает дату оплаты
func (c *Client) CreateCharge(ctx context.Context, token, subscriptionID string) error {
	httpReq, err := c.newRequest(ctx, http.MethodPost, "/subscriptions/"+subscriptionID+"/charges", token, nil, nil)
	if err != nil {
		return err
	}
	if err := c.do(httpReq, nil); err != nil {
		return fmt.Errorf("failed to create charge: %w", err)
	}
	return nil
}

// PayCharge отмечает списание оплаченным
func (c *Client) PayCharge(ctx context.Context, token, chargeID string) error {
	httpReq, err := c.newRequest(ctx, http.MethodPatch, "/charges/"+chargeID+"/pay", token, nil, nil)
	if err != nil {
		return err
	}
	if err := c.do(httpReq, nil); err != nil {
		return fmt.Errorf("failed to pay charge: %w", err)
	}
	return nil
}

// ListCharges возвращает списания за период
func (c *Client) ListCharges(ctx context.Context, token string, period PeriodFilter) ([]model.Charge, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/charges", token, period.query(), nil)
	if err != nil {
		return nil, err
	}
	var charges []model.Charge
	if err := c.do(req, &charges); err != nil {
		return nil, fmt.Errorf("failed to list charges: %w", err)
	}
	return charges, nil
}

// ListAlerts возвращает все уведомления пользователя
func (c *Client) ListAlerts(ctx context.Context, token string) ([]model.Alert, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/alerts", token, nil, nil)
	if err != nil {
		return nil, err
	}
	var alerts []model.Alert
	if err := c.do(req, &alerts); err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// MarkAlertRead отмечает уведомление прочитанным
func (c *Client) MarkAlertRead(ctx context.Context, token, id string) error {
	httpReq, err := c.newRequest(ctx, http.MethodPatch, "/alerts/"+id+"/read", token, nil, nil)
	if err != nil {
		return err
	}
	if err := c.do(httpReq, nil); err != nil {
		return fmt.Errorf("failed to mark alert as read: %w", err)
	}
	return nil
}

// GetSummary возвращает сводку дашборда за период
func (c *Client) GetSummary(ctx context.Context, token string, period PeriodFilter) (*model.Summary, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/dashboard/summary", token, period.query(), nil)
	if err != nil {
		return nil, err
	}
	var summary model.Summary
	if err := c.do(req, &summary); err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	return &summary, nil
}

// GetUpcoming возвращает предстоящие списания за период
func (c *Client) GetUpcoming(ctx context.Context, token string, period PeriodFilter) ([]model.UpcomingCharge, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/dashboard/upcoming", token, period.query(), nil)
	if err != nil {
		return nil, err
	}
	var upcoming []model.UpcomingCharge
	if err := c.do(req, &upcoming); err != nil {
		return nil, fmt.Errorf("failed to get upcoming charges: %w", err)
	}
	return upcoming, nil
}
