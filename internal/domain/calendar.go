package domain

import "time"

// Calendar provides the day-boundary arithmetic the forecast reducer needs.
type Calendar interface {
	// StartOfDay returns midnight of the calendar day containing t.
	StartOfDay(t time.Time) time.Time
	// AddDays moves t by n calendar days, keeping the wall-clock time.
	AddDays(t time.Time, n int) time.Time
	// Hour returns the hour of day of t, 0-23.
	Hour(t time.Time) int
	// DateKey formats the calendar day of t as YYYY-MM-DD.
	DateKey(t time.Time) string
	// Location returns the zone the calendar computes in.
	Location() *time.Location
}

// ZoneCalendar is a Calendar for a fixed *time.Location.
type ZoneCalendar struct {
	loc *time.Location
}

// NewZoneCalendar returns a calendar for loc. A nil loc means UTC.
func NewZoneCalendar(loc *time.Location) ZoneCalendar {
	if loc == nil {
		loc = time.UTC
	}
	return ZoneCalendar{loc: loc}
}

// UTCCalendar is the calendar matching the provider's dt_txt grid.
func UTCCalendar() ZoneCalendar {
	return NewZoneCalendar(time.UTC)
}

// OffsetCalendar returns a calendar for a fixed offset in seconds east of UTC.
func OffsetCalendar(offsetSeconds int) ZoneCalendar {
	if offsetSeconds == 0 {
		return UTCCalendar()
	}
	return NewZoneCalendar(time.FixedZone("", offsetSeconds))
}

func (c ZoneCalendar) zone() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// StartOfDay returns midnight of t's date in the calendar's zone.
func (c ZoneCalendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.zone())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.zone())
}

// AddDays normalizes through time.Date so DST transitions keep the wall clock.
func (c ZoneCalendar) AddDays(t time.Time, n int) time.Time {
	t = t.In(c.zone())
	return time.Date(t.Year(), t.Month(), t.Day()+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), c.zone())
}

// Hour returns t's hour of day in the calendar's zone.
func (c ZoneCalendar) Hour(t time.Time) int {
	return t.In(c.zone()).Hour()
}

// DateKey returns t's date in the calendar's zone as YYYY-MM-DD.
func (c ZoneCalendar) DateKey(t time.Time) string {
	return t.In(c.zone()).Format(time.DateOnly)
}

// Location returns the calendar's zone, UTC for the zero value.
func (c ZoneCalendar) Location() *time.Location {
	return c.zone()
}
