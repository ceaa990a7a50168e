package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/couchcryptid/weather-lookup-service/internal/render"
	"github.com/jonboulle/clockwork"
)

// Result is the outcome of a successful lookup.
type Result struct {
	Query          string
	Location       domain.Location
	Forecast       domain.Forecast
	View           render.View
	AddedToHistory bool
}

// Service runs the search chain: validate, geocode, record history, fetch the
// forecast, reduce it to a daily outlook, and present it.
type Service struct {
	geocoder   domain.Geocoder
	forecasts  domain.ForecastSource
	history    History
	calendars  CalendarResolver
	presenters []Presenter
	publisher  EventPublisher
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithPresenter displays every successful lookup through p. Presenters run
// in the order they were added.
func WithPresenter(p Presenter) Option {
	return func(s *Service) { s.presenters = append(s.presenters, p) }
}

// WithPublisher forwards every successful lookup to p.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithCalendars sets how the outlook calendar is chosen. The default is UTC.
func WithCalendars(r CalendarResolver) Option {
	return func(s *Service) { s.calendars = r }
}

// WithClock sets the time source for "today".
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// New creates a Service. geocoder and forecasts are usually the same client.
func New(geocoder domain.Geocoder, forecasts domain.ForecastSource, history History, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Service {
	s := &Service{
		geocoder:  geocoder,
		forecasts: forecasts,
		history:   history,
		calendars: FixedCalendar{Calendar: domain.UTCCalendar()},
		clock:     clockwork.NewRealClock(),
		logger:    logger,
		metrics:   metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search looks up the weather for raw. Whitespace-only input fails with
// domain.ErrValidation before any request is made. The search is recorded in
// the history only after geocoding succeeds. Any failure aborts the chain
// without presenting anything.
func (s *Service) Search(ctx context.Context, raw string) (Result, error) {
	start := time.Now()
	res, err := s.search(ctx, raw)
	s.metrics.LookupDuration.Observe(time.Since(start).Seconds())
	s.metrics.Lookups.WithLabelValues(Outcome(err)).Inc()
	return res, err
}

// Rerun repeats the n-th rendered history entry (1-based, newest first).
func (s *Service) Rerun(ctx context.Context, n int) (Result, error) {
	query, ok := s.history.At(n)
	if !ok {
		return Result{}, fmt.Errorf("%w: no history entry %d", domain.ErrValidation, n)
	}
	return s.Search(ctx, query)
}

func (s *Service) search(ctx context.Context, raw string) (Result, error) {
	query := strings.TrimSpace(raw)
	if query == "" {
		return Result{}, fmt.Errorf("%w: please enter a valid location", domain.ErrValidation)
	}

	loc, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		return Result{}, err
	}

	added, err := s.history.Append(ctx, query)
	if err != nil {
		s.logger.Error("record search history failed", "query", query, "error", err)
	}

	forecast, err := s.forecasts.Forecast(ctx, loc)
	if err != nil {
		return Result{}, err
	}
	current, ok := forecast.Current()
	if !ok {
		return Result{}, fmt.Errorf("%w: forecast for %q has no samples", domain.ErrNetwork, loc.Name)
	}

	cal := s.calendars.CalendarFor(loc, forecast)
	now := s.clock.Now()
	daily := domain.SelectDailySummaries(forecast.Samples, now, cal)
	s.metrics.DailySummariesCount.Observe(float64(len(daily)))

	city := loc.Name
	if city == "" {
		city = forecast.City
	}

	res := Result{
		Query:    query,
		Location: loc,
		Forecast: forecast,
		View: render.View{
			City:    city,
			Today:   now.In(cal.Location()),
			Current: current,
			Daily:   daily,
		},
		AddedToHistory: added,
	}

	for _, p := range s.presenters {
		if err := p.Present(ctx, res.View); err != nil {
			return Result{}, fmt.Errorf("present %q: %w", query, err)
		}
	}

	s.publish(ctx, res, now)

	s.logger.Debug("lookup complete", "query", query, "city", city, "samples", len(forecast.Samples), "daily", len(daily))
	return res, nil
}

func (s *Service) publish(ctx context.Context, res Result, now time.Time) {
	if s.publisher == nil {
		return
	}
	event := domain.LookupEvent{
		Query:      res.Query,
		Location:   res.Location,
		Current:    res.View.Current,
		Daily:      res.View.Daily,
		LookedUpAt: now.UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.EventPublishErrors.Inc()
		s.logger.Warn("publish lookup event failed", "query", res.Query, "error", err)
		return
	}
	s.metrics.EventsPublished.Inc()
}

// Outcome classifies a Search error for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrNetwork):
		return "network"
	default:
		return "error"
	}
}
