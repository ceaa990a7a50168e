package domain

import "time"

// Location is a geocoded place.
type Location struct {
	Name    string  `json:"name"`
	State   string  `json:"state,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// ForecastSample is one three-hour forecast slot.
type ForecastSample struct {
	Timestamp     int64   `json:"dt"`
	TimestampText string  `json:"dt_txt"`
	TemperatureF  float64 `json:"temp_f"`
	WindMph       float64 `json:"wind_mph"`
	HumidityPct   int     `json:"humidity_pct"`
	IconCode      string  `json:"icon"`
	Description   string  `json:"description,omitempty"`
}

// Time returns the sample's instant.
func (s ForecastSample) Time() time.Time {
	return time.Unix(s.Timestamp, 0).UTC()
}

// Forecast is the provider's multi-day forecast for one coordinate.
type Forecast struct {
	City           string           `json:"city"`
	TimezoneOffset int              `json:"timezone_offset"` // seconds east of UTC
	Samples        []ForecastSample `json:"samples"`
}

// DailySummary is the sample chosen to represent a calendar day.
type DailySummary struct {
	Date   string         `json:"date"` // YYYY-MM-DD in the reducer's calendar
	Sample ForecastSample `json:"sample"`
}

// LookupEvent records a completed lookup for downstream consumers.
type LookupEvent struct {
	Query      string         `json:"query"`
	Location   Location       `json:"location"`
	Current    ForecastSample `json:"current"`
	Daily      []DailySummary `json:"daily"`
	LookedUpAt time.Time      `json:"looked_up_at"`
}
