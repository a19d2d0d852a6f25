package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestLogin(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		// Вход выполняется без токена
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"t-1","user":{"name":"Иван","email":"ivan@example.com","currency":"BRL"}}`))
	})
	defer server.Close()

	auth, err := client.Login(context.Background(), LoginRequest{Email: "ivan@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "t-1", auth.Token)
	assert.Equal(t, "Иван", auth.User.Name)
}

func TestBearerTokenAttached(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t-1", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})
	defer server.Close()

	_, err := client.ListCategories(context.Background(), "t-1")
	require.NoError(t, err)
}

func TestAPIErrorWithMessage(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Credenciais inválidas"}`))
	})
	defer server.Close()

	_, err := client.Login(context.Background(), LoginRequest{Email: "ivan@example.com", Password: "wrong1"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Credenciais inválidas", apiErr.Message)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Credenciais inválidas", UserMessage(err))
}

func TestMalformedResponseIsTypedError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"oops`))
	})
	defer server.Close()

	// Кривое тело успешного ответа не превращается в пустой список
	_, err := client.ListAlerts(context.Background(), "t-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestPeriodFilterQuery(t *testing.T) {
	initial := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	final := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/charges", r.URL.Path)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("initial_period"))
		assert.Equal(t, "2024-06-30", r.URL.Query().Get("final_period"))
		w.Write([]byte(`[]`))
	})
	defer server.Close()

	_, err := client.ListCharges(context.Background(), "t-1", PeriodFilter{Initial: &initial, Final: &final})
	require.NoError(t, err)
}

func TestSubscriptionFilterQuery(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		w.Write([]byte(`[]`))
	})
	defer server.Close()

	_, err := client.ListSubscriptions(context.Background(), "t-1", SubscriptionFilter{Status: "active"})
	require.NoError(t, err)
}

func TestCancelSubscription(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/subscriptions/s1/cancel", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	require.NoError(t, client.CancelSubscription(context.Background(), "t-1", "s1"))
}
