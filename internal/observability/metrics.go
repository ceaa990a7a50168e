package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_lookup"

// Metrics holds the Prometheus counters, histograms, and gauges for the lookup service.
type Metrics struct {
	Lookups        *prometheus.CounterVec // labels: outcome={success,validation,not_found,network}
	LookupDuration prometheus.Histogram

	// OpenWeatherMap API metrics.
	APIRequests *prometheus.CounterVec   // labels: endpoint={geocode,forecast}, outcome={success,error,empty}
	APIDuration *prometheus.HistogramVec // labels: endpoint={geocode,forecast}

	// Search history metrics.
	HistoryEntries prometheus.Gauge
	HistoryAppends prometheus.Counter

	// Lookup event publishing.
	EventsPublished     prometheus.Counter
	EventPublishErrors  prometheus.Counter
	DailySummariesCount prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.Lookups,
		m.LookupDuration,
		m.APIRequests,
		m.APIDuration,
		m.HistoryEntries,
		m.HistoryAppends,
		m.EventsPublished,
		m.EventPublishErrors,
		m.DailySummariesCount,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Weather lookups by outcome.",
		}, []string{"outcome"}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Duration of a complete geocode, forecast, and render chain.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "openweather_requests_total",
			Help:      "OpenWeatherMap API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		APIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "openweather_request_duration_seconds",
			Help:      "OpenWeatherMap API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"endpoint"}),
		HistoryEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_entries",
			Help:      "Number of distinct searches in the persisted history.",
		}),
		HistoryAppends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_appends_total",
			Help:      "New searches added to the history.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_events_published_total",
			Help:      "Lookup events written to the event topic.",
		}),
		EventPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_event_publish_errors_total",
			Help:      "Lookup events that could not be written.",
		}),
		DailySummariesCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "daily_summaries",
			Help:      "Number of daily summaries produced per lookup.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		}),
	}
}
