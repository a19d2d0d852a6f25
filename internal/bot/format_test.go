package bot

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/subscription_bot/internal/api"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "R$ 34.90", formatMoney(34.9, "BRL"))
	assert.Equal(t, "$ 9.99", formatMoney(9.99, "USD"))
	// Незнакомая валюта выводится кодом
	assert.Equal(t, "GBP 5.00", formatMoney(5, "GBP"))
}

func TestParseUserDate(t *testing.T) {
	expected := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	got, err := parseUserDate("15.03.2026")
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	got, err = parseUserDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	_, err = parseUserDate("15/03/2026")
	assert.Error(t, err)
}

func TestValidationMessage(t *testing.T) {
	validate := validator.New()

	err := validate.Struct(api.LoginRequest{Email: "not-an-email", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, "Неверный формат email", validationMessage(err))

	err = validate.Struct(api.LoginRequest{Email: "user@example.com", Password: "123"})
	require.Error(t, err)
	assert.Contains(t, validationMessage(err), "пароль")

	err = validate.Struct(api.SubscriptionRequest{
		CategoryID:      "cat-1",
		ServiceName:     "Netflix",
		Amount:          -5,
		BillingCycle:    "monthly",
		NextBillingDate: "2026-03-15",
	})
	require.Error(t, err)
	assert.Contains(t, validationMessage(err), "сумма")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "короткое", truncate("короткое", 30))
	assert.Equal(t, "длинн…", truncate("длинное сообщение", 5))
}
