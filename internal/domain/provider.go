package domain

import "context"

// Geocoder resolves free-text place names to coordinates.
type Geocoder interface {
	// Geocode returns the best match for query. It returns ErrNotFound when
	// the provider has no match and ErrNetwork on transport failures.
	Geocode(ctx context.Context, query string) (Location, error)
}

// ForecastSource fetches multi-day forecasts.
type ForecastSource interface {
	// Forecast returns the three-hour samples for loc in chronological order.
	Forecast(ctx context.Context, loc Location) (Forecast, error)
}
