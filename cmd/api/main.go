// Command api is the players API server.
//
// Usage:
//
//	players-api
//	API_PORT=8080 players-api

// @title Players API
// @version 1.0.0
// @description CRUD over baseball players with canonical batting stats. The table is seeded once, from a validated roster feed, when empty.
// @host localhost:5000
// @BasePath /
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/EnduringBeta/fraction.work/internal/api"
	"github.com/EnduringBeta/fraction.work/internal/api/handler"
	"github.com/EnduringBeta/fraction.work/internal/cache"
	"github.com/EnduringBeta/fraction.work/internal/config"
	"github.com/EnduringBeta/fraction.work/internal/db"
	"github.com/EnduringBeta/fraction.work/internal/external"
	"github.com/EnduringBeta/fraction.work/internal/listener"
	"github.com/EnduringBeta/fraction.work/internal/maintenance"
	"github.com/EnduringBeta/fraction.work/internal/provider/roster"
	"github.com/EnduringBeta/fraction.work/internal/seed"

	_ "github.com/EnduringBeta/fraction.work/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Schema must exist before the first request, seeded or not.
	if err := pool.EnsureSchema(ctx); err != nil {
		logger.Error("Failed to create schema", "error", err)
		os.Exit(1)
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Seed the players table once, retrying in the background while empty
	fetcher := roster.NewClient(cfg.RosterURL, cfg.RosterRequestsPerMinute, logger)
	seeder := func(ctx context.Context) (seed.Result, error) {
		result, err := seed.Initialize(ctx, pool, fetcher, logger)
		if err == nil && result.Inserted > 0 {
			_ = maintenance.AnalyzePlayers(ctx, pool, logger)
		}
		return result, err
	}
	if cfg.SeedOnStartup {
		result, err := seeder(ctx)
		if err != nil {
			logger.Error("Startup seed failed", "state", result.State, "error", err)
		}
		if result.State != seed.StateSeeded {
			retry := maintenance.Config{SeedRetryInterval: cfg.SeedRetryInterval}
			go maintenance.Start(ctx, retry, seeder, logger)
		}
	}

	// Start LISTEN/NOTIFY consumer so other instances' writes purge our cache
	go listener.Start(ctx, cfg.DatabaseURL, appCache, logger)

	// Descriptions are optional
	var describer handler.Describer
	if cfg.DescriptionsEnabled() {
		describer = external.NewDescriber(external.DescriberConfig{
			APIKey:            cfg.OpenAIAPIKey,
			BaseURL:           cfg.OpenAIBaseURL,
			Model:             cfg.OpenAIModel,
			RequestsPerSecond: cfg.DescribeRequestsPerSecond,
		}, logger)
		logger.Info("Descriptions enabled", "model", cfg.OpenAIModel)
	} else {
		logger.Info("Descriptions disabled (no OPENAI_API_KEY)")
	}

	// Create router
	router := api.NewRouter(pool, describer, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting players API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
