// Command weather is an interactive terminal client for the lookup service.
// Each line is a location search; the report is printed to stdout.
//
// Usage:
//
//	go run ./cmd/weather [-card forecast.png]
//
// At the prompt:
//
//	Austin, TX   look up a location
//	:history     list past searches, newest first
//	!2           re-run the second entry of :history
//	:quit        exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-lookup-service/internal/adapter/openweather"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/sqlite"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/timezone"
	"github.com/couchcryptid/weather-lookup-service/internal/config"
	"github.com/couchcryptid/weather-lookup-service/internal/history"
	"github.com/couchcryptid/weather-lookup-service/internal/lookup"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/couchcryptid/weather-lookup-service/internal/render"
	"github.com/joho/godotenv"
)

func main() {
	cardPath := flag.String("card", "", "also save each forecast as a PNG card at this path")
	flag.Parse()

	if code := run(*cardPath); code != 0 {
		os.Exit(code)
	}
}

func run(cardPath string) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	logger := observability.NewLoggerTo(os.Stderr, cfg.LogLevel)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, err := sqlite.Open(ctx, cfg.HistoryDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open history: %v\n", err)
		return 1
	}
	defer kv.Close()

	store := history.NewStore(kv, logger, metrics)
	if err := store.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "load history: %v\n", err)
		return 1
	}

	opts := []lookup.Option{lookup.WithPresenter(render.NewTextPresenter(os.Stdout))}
	if cardPath != "" {
		opts = append(opts, lookup.WithPresenter(render.NewCardPresenter(cardPath)))
	}
	if cfg.CalendarZone == config.CalendarZoneCity {
		finder, err := timezone.NewFinder()
		if err != nil {
			fmt.Fprintf(os.Stderr, "timezone: %v\n", err)
			return 1
		}
		opts = append(opts, lookup.WithCalendars(finder))
	}

	client := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.OpenWeatherTimeout, metrics, logger)
	svc := lookup.New(client, client, store, logger, metrics, opts...)

	if err := repl(ctx, os.Stdin, os.Stdout, svc, store); err != nil {
		logger.Error("read input", "error", err)
		return 1
	}
	return 0
}
