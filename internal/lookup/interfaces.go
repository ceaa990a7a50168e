package lookup

import (
	"context"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/render"
)

// History records successful searches.
type History interface {
	Append(ctx context.Context, search string) (bool, error)
	// At returns the n-th rendered entry, 1-based and newest first.
	At(n int) (string, bool)
}

// Presenter displays a lookup result.
type Presenter interface {
	Present(ctx context.Context, v render.View) error
}

// EventPublisher forwards completed lookups downstream.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.LookupEvent) error
}

// CalendarResolver chooses the calendar the daily outlook is computed in.
type CalendarResolver interface {
	CalendarFor(loc domain.Location, forecast domain.Forecast) domain.Calendar
}

// FixedCalendar resolves every lookup to the same calendar.
type FixedCalendar struct {
	Calendar domain.Calendar
}

// CalendarFor returns the fixed calendar regardless of location.
func (f FixedCalendar) CalendarFor(_ domain.Location, _ domain.Forecast) domain.Calendar {
	return f.Calendar
}
