package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ivanoskov/subscription_bot/internal/api"
	"github.com/ivanoskov/subscription_bot/internal/bot"
	"github.com/ivanoskov/subscription_bot/internal/charts"
	"github.com/ivanoskov/subscription_bot/internal/config"
	"github.com/ivanoskov/subscription_bot/internal/service"
	"github.com/ivanoskov/subscription_bot/internal/session"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

func Handler(ctx context.Context, request Request) (*Response, error) {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	apiClient := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)

	sessions, err := session.NewManager(cfg.SessionsFile)
	if err != nil {
		return errorResponse(err)
	}

	tracker := service.NewTracker(apiClient, log)

	tgBot, err := bot.NewBot(cfg.TelegramToken, apiClient, tracker, sessions, charts.NewChartGenerator(), log)
	if err != nil {
		return errorResponse(err)
	}

	if err := tgBot.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования
}
