package main

import (
	"log/slog"
	"os"

	"github.com/ivanoskov/subscription_bot/internal/api"
	"github.com/ivanoskov/subscription_bot/internal/bot"
	"github.com/ivanoskov/subscription_bot/internal/charts"
	"github.com/ivanoskov/subscription_bot/internal/config"
	"github.com/ivanoskov/subscription_bot/internal/service"
	"github.com/ivanoskov/subscription_bot/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	apiClient := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)

	sessions, err := session.NewManager(cfg.SessionsFile)
	if err != nil {
		log.Error("failed to load sessions", slog.Any("error", err))
		os.Exit(1)
	}

	tracker := service.NewTracker(apiClient, log)

	tgBot, err := bot.NewBot(cfg.TelegramToken, apiClient, tracker, sessions, charts.NewChartGenerator(), log)
	if err != nil {
		log.Error("failed to create bot", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("bot started")
	if err := tgBot.Start(); err != nil {
		log.Error("bot stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
