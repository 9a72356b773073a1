// Package main is the entry point for the skycast API server.
//
// It loads configuration, builds the evaluation pipeline (scorers and
// aggregator from configured reference points), wires the cached Weatherbit
// repository behind the weather service, mounts the HTTP chassis, and
// listens until SIGINT/SIGTERM triggers a graceful shutdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"skycast/internal/api/handlers"
	"skycast/internal/config"
	"skycast/internal/core"
	"skycast/internal/evaluation"
	"skycast/internal/external"
	"skycast/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on error.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("skycast API starting",
		"environment", cfg.Environment,
		"port", cfg.Server.Port,
	)

	// Scoring profiles are validated here, at construction time: a profile
	// whose optimal and worst values coincide fails startup.
	scorer, err := evaluation.NewComfortScorer(
		cfg.Evaluation.Temperature.Profile(),
		cfg.Evaluation.Pressure.Profile(),
	)
	if err != nil {
		return fmt.Errorf("building comfort scorer: %w", err)
	}
	aggregator := evaluation.NewAggregator(scorer, cfg.Evaluation.PressureBigDelta)

	client := external.NewClient(
		&http.Client{Timeout: cfg.Weatherbit.Timeout},
		cfg.Weatherbit.BaseURL,
		cfg.Weatherbit.APIKey,
		cfg.Weatherbit.ForecastDays,
		logger,
	)
	repo := external.NewCachedRepository(
		client,
		cfg.Weatherbit.CurrentCacheMaxLife,
		cfg.Weatherbit.ForecastCacheMaxLife,
		logger,
	)

	service := weather.NewService(repo, aggregator, logger)
	weatherHandler := handlers.NewWeatherHandler(service, logger)

	srv, err := core.NewServer(cfg, logger, func(r chi.Router) {
		r.Route("/weather", weatherHandler.RegisterRoutes)
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// newLogger builds the application-wide structured logger.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
