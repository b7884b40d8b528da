package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/kgrady/boltcard-gateway/internal/claims"
	"github.com/kgrady/boltcard-gateway/internal/config"
	"github.com/kgrady/boltcard-gateway/internal/db"
	"github.com/kgrady/boltcard-gateway/internal/handlers"
	"github.com/kgrady/boltcard-gateway/internal/invoice"
	"github.com/kgrady/boltcard-gateway/internal/kv"
	"github.com/kgrady/boltcard-gateway/internal/node"
	"github.com/kgrady/boltcard-gateway/internal/rates"
	"github.com/kgrady/boltcard-gateway/internal/registry"
	"github.com/kgrady/boltcard-gateway/internal/service"
	"github.com/kgrady/boltcard-gateway/internal/settlement"
)

func main() {
	_ = godotenv.Load() //nolint:errcheck // Missing .env file is fine

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting boltcard gateway",
		"port", cfg.Server.Port,
		"chain", cfg.Node.Chain,
		"log_level", cfg.Logger.Level,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	cardStore := registry.NewStore(database)
	cardCache := registry.NewCache(cardStore, logger)
	if err := cardCache.Reload(ctx); err != nil {
		logger.Warn("initial card cache load failed, matcher will fall back to the store", "error", err)
	}

	rateCache := rates.NewCache()
	rateClient := rates.NewClient(cfg.Rates.URL, cfg.Rates.Timeout, logger)
	refreshRates := rates.RefreshJob(rateCache, rateClient, logger)
	refreshRates()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Rates.RefreshSchedule, refreshRates); err != nil {
		logger.Error("invalid rates refresh schedule", "schedule", cfg.Rates.RefreshSchedule, "error", err)
		os.Exit(1)
	}
	if _, err := scheduler.AddFunc("@every 5m", cardCache.ReloadJob(ctx)); err != nil {
		logger.Error("failed to schedule card cache reload", "error", err)
		os.Exit(1)
	}

	poller := node.NewPoller(cfg.Node.StatusURL, cfg.Node.PollInterval, logger)
	gate := poller.Gate(ctx)

	claimStore := claims.New(kv.NewPostgres(database), logger)
	if _, err := scheduler.AddFunc("@daily", claimStore.SweepJob(ctx)); err != nil {
		logger.Error("failed to schedule claim sweep", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	notifier := settlement.NewNotifier(cfg.Settlement.URL, cfg.Settlement.Timeout, logger)
	checker := invoice.NewChecker(cfg.Node.Chain, registry.NewPaymentIndex(database))

	withdrawService := service.NewWithdrawService(
		cfg.Node.ID,
		cardCache,
		checker,
		claimStore,
		gate,
		rateCache,
		notifier,
		logger,
	)
	cardService := service.NewCardService(cardStore, cardCache, logger)

	router := handlers.NewRouter(cfg, withdrawService, cardService, database, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}
