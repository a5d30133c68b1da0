package main

import (
	"context"
	"os"
	_ "time/tzdata" // zone lookups must work in scratch containers

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Bananenschreck/telegram-countdown-bot/internal/app"
	"github.com/Bananenschreck/telegram-countdown-bot/internal/config"
	"github.com/Bananenschreck/telegram-countdown-bot/internal/logger"
)

func main() {
	// Best effort; a missing .env is fine in production.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// No logger yet; exit immediately.
		// We intentionally ignore WriteString errors to avoid shadowing the real cause.
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	// Ensure logger flush; ignore sync error (common on some platforms).
	defer func() { _ = log.Sync() }()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("app init failed", zap.Error(err))
	}

	if err := application.Run(context.Background()); err != nil {
		log.Fatal("app run failed", zap.Error(err))
	}
}
