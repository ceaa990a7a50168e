package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/weather-lookup-service/internal/adapter/kafka"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/openweather"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/sqlite"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/timezone"
	"github.com/couchcryptid/weather-lookup-service/internal/config"
	"github.com/couchcryptid/weather-lookup-service/internal/history"
	"github.com/couchcryptid/weather-lookup-service/internal/lookup"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	if code := run(); code != 0 {
		os.Exit(code)
	}
}

func run() int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, err := sqlite.Open(ctx, cfg.HistoryDB)
	if err != nil {
		logger.Error("failed to open history database", "path", cfg.HistoryDB, "error", err)
		return 1
	}
	defer kv.Close()

	store := history.NewStore(kv, logger, metrics)
	if err := store.Load(ctx); err != nil {
		logger.Error("failed to load search history", "error", err)
		return 1
	}

	client := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.OpenWeatherTimeout, metrics, logger)

	opts := []lookup.Option{}
	if cfg.CalendarZone == config.CalendarZoneCity {
		finder, err := timezone.NewFinder()
		if err != nil {
			logger.Error("failed to initialize timezone finder", "error", err)
			return 1
		}
		opts = append(opts, lookup.WithCalendars(finder))
	}
	logger.Info("daily outlook calendar", "zone", cfg.CalendarZone)

	// Lookup events are feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		opts = append(opts, lookup.WithPublisher(writer))
		logger.Info("lookup event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaLookupTopic)
	} else {
		logger.Info("lookup event publishing disabled")
	}

	svc := lookup.New(client, client, store, logger, metrics, opts...)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, store, store, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return 0
}
