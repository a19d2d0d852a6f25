package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config настройки приложения, читаются из окружения
type Config struct {
	TelegramToken string        `env:"TELEGRAM_TOKEN" env-required:"true"`
	APIBaseURL    string        `env:"API_BASE_URL" env-required:"true"`
	APITimeout    time.Duration `env:"API_TIMEOUT" env-default:"10s"`
	SessionsFile  string        `env:"SESSIONS_FILE" env-default:"sessions.json"`
}

// LoadConfig загружает конфигурацию из .env (если есть) и переменных окружения
func LoadConfig() (*Config, error) {
	// .env нужен только для локального запуска, поэтому его отсутствие не ошибка
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return &cfg, nil
}
