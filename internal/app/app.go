package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Bananenschreck/telegram-countdown-bot/internal/config"
	"github.com/Bananenschreck/telegram-countdown-bot/internal/domain"
	"github.com/Bananenschreck/telegram-countdown-bot/internal/scheduler"
	"github.com/Bananenschreck/telegram-countdown-bot/internal/store"
	"github.com/Bananenschreck/telegram-countdown-bot/internal/telegram"
)

// Long polling waits up to updateTimeout seconds server-side, so the HTTP
// client deadline has to sit above it.
const (
	updateTimeout = 30
	clientTimeout = 50 * time.Second
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	repo    store.Repo
	router  *telegram.Router
	loc     *time.Location
	hour    int
	minute  int
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	loc, err := time.LoadLocation(cfg.DefaultTZ)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", cfg.DefaultTZ, err)
	}
	hour, minute, err := domain.ParseClock(cfg.ReminderTime)
	if err != nil {
		return nil, fmt.Errorf("reminder time %q: %w", cfg.ReminderTime, err)
	}

	client := &http.Client{Timeout: clientTimeout}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{
		cfg:     cfg,
		log:     log,
		bot:     bot,
		httpSrv: srv,
		loc:     loc,
		hour:    hour,
		minute:  minute,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting countdown-bot",
		zap.String("tz", a.cfg.DefaultTZ),
		zap.String("reminder", a.cfg.ReminderTime),
		zap.String("http", a.cfg.HTTPAddr),
	)

	// Open the store and run migrations.
	repo, err := store.Open(ctx, a.cfg.DatabaseURL)
	if err != nil {
		a.log.Error("open store failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("store ready")

	a.router = telegram.NewRouter(a.bot, a.log, a.repo, a.cfg.DefaultTZ)
	if err := a.router.RegisterCommands(); err != nil {
		a.log.Warn("register command menu failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(a.repo, a.log, a.router, a.hour, a.minute, a.loc)
	go sched.Run(ctx)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeout
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")

			// Create a short-lived shutdown context and cancel it immediately after use.
			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if a.repo != nil {
				_ = a.repo.Close()
			}
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}
