package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"home-tracker/cache"
	"home-tracker/chart"
	"home-tracker/config"
	"home-tracker/dashboard"
	"home-tracker/httpapi"
	"home-tracker/storage"
	"home-tracker/upstream"
	"home-tracker/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetDebug(cfg.Debug)

	logger.Info("=== Home Tracker dashboard starting ===")
	logger.Info("Config — listen: %s | upstream: %s | cache ttl: %ds | retries: %d",
		cfg.ListenAddr, cfg.UpstreamURL, cfg.CacheTTLSec, cfg.MaxRetries)

	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   time.Duration(cfg.RetryBaseMs) * time.Millisecond,
		Logger:      logger,
	}

	pgStore, err := storage.NewPostgresWriter(cfg.DSN(), retry)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer pgStore.Close()

	csvStore, err := storage.NewCSVExporter(cfg.CSVExportDir)
	if err != nil {
		logger.Error("Failed to create CSV exporter: %v", err)
		os.Exit(1)
	}

	client := upstream.New(cfg.UpstreamURL,
		time.Duration(cfg.UpstreamTimeoutS)*time.Second, retry, logger)
	fetcher := cache.New(cfg.RedisAddr,
		time.Duration(cfg.CacheTTLSec)*time.Second, client, logger)
	defer fetcher.Close()

	session := dashboard.NewSession(
		fetcher,
		func() chart.Engine { return chart.NewLogEngine(logger) },
		dashboard.NewLogPresenter(logger),
		storage.Multi(pgStore, csvStore),
		logger,
	)
	defer session.Close()

	r := mux.NewRouter()
	httpapi.RegisterRoutes(r, session, pgStore)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("Shutting down...")
		_ = server.Shutdown(context.Background())
	}()

	logger.Info("Dashboard API listening on %s", cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error: %v", err)
		os.Exit(1)
	}
}
