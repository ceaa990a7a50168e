package timezone

import (
	"fmt"
	"sync"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/ringsaturn/tzf"
)

// Finder resolves coordinates to IANA zones and builds calendars for them.
type Finder struct {
	finder tzf.F
}

var (
	defaultFinder *Finder
	defaultErr    error
	once          sync.Once
)

// NewFinder returns the shared finder. The tzf data set is loaded once
// because it holds all zone polygons in memory.
func NewFinder() (*Finder, error) {
	once.Do(func() {
		f, err := tzf.NewDefaultFinder()
		if err != nil {
			defaultErr = fmt.Errorf("initialize timezone finder: %w", err)
			return
		}
		defaultFinder = &Finder{finder: f}
	})
	return defaultFinder, defaultErr
}

// Zone returns the IANA zone containing the coordinate.
func (f *Finder) Zone(lat, lon float64) (*time.Location, error) {
	name := f.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return nil, fmt.Errorf("no timezone for lat=%f, lon=%f", lat, lon)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// CalendarFor returns a calendar in the location's own zone, falling back
// to the forecast's fixed UTC offset when the coordinate has no zone.
func (f *Finder) CalendarFor(loc domain.Location, forecast domain.Forecast) domain.Calendar {
	zone, err := f.Zone(loc.Lat, loc.Lon)
	if err != nil {
		return domain.OffsetCalendar(forecast.TimezoneOffset)
	}
	return domain.NewZoneCalendar(zone)
}
