package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("API_BASE_URL", "http://localhost:3000/api")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, "http://localhost:3000/api", cfg.APIBaseURL)
	assert.Equal(t, "10s", cfg.APITimeout.String())
	assert.Equal(t, "sessions.json", cfg.SessionsFile)
}

func TestLoadConfigMissingToken(t *testing.T) {
	// t.Setenv регистрирует откат, после чего переменную можно убрать совсем
	t.Setenv("TELEGRAM_TOKEN", "x")
	os.Unsetenv("TELEGRAM_TOKEN")
	t.Setenv("API_BASE_URL", "http://localhost:3000/api")

	_, err := LoadConfig()
	assert.Error(t, err)
}
