// Package render turns lookup results into something a person can read: a
// plain-text report for terminals and a PNG card for dashboards. Renderers
// only read the data they are given.
package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
)

const iconBaseURL = "https://openweathermap.org/img/w/"

// displayDate is the M/D/YYYY layout for every displayed date.
const displayDate = "1/2/2006"

// View is the display data for one lookup.
type View struct {
	City    string
	Today   time.Time
	Current domain.ForecastSample
	Daily   []domain.DailySummary
}

// IconURL returns the image URL for an OpenWeatherMap icon code.
func IconURL(code string) string {
	if code == "" {
		return ""
	}
	return iconBaseURL + code + ".png"
}

// iconConditions names the condition each OpenWeatherMap icon group shows.
var iconConditions = map[string]string{
	"01": "clear",
	"02": "few clouds",
	"03": "clouds",
	"04": "overcast",
	"09": "showers",
	"10": "rain",
	"11": "thunderstorm",
	"13": "snow",
	"50": "mist",
}

// IconLabel describes an icon code in words for renderers that do not fetch
// the icon image, e.g. "rain (10d)". Unknown codes are returned as
// "icon <code>".
func IconLabel(code string) string {
	if code == "" {
		return ""
	}
	if len(code) >= 2 {
		if cond, ok := iconConditions[code[:2]]; ok {
			return cond + " (" + code + ")"
		}
	}
	return "icon " + code
}

// FormatDate renders t as M/D/YYYY in t's own zone.
func FormatDate(t time.Time) string {
	return t.Format(displayDate)
}

// SummaryDate renders a DailySummary date key as M/D/YYYY. Unparseable keys
// are returned unchanged.
func SummaryDate(key string) string {
	t, err := time.Parse(time.DateOnly, key)
	if err != nil {
		return key
	}
	return t.Format(displayDate)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Temp formats a Fahrenheit reading, e.g. "71.2°F".
func Temp(f float64) string { return formatNumber(f) + "°F" }

// Wind formats a wind speed, e.g. "5.1 MPH".
func Wind(mph float64) string { return formatNumber(mph) + " MPH" }

// Humidity formats a relative humidity, e.g. "40%".
func Humidity(pct int) string { return fmt.Sprintf("%d%%", pct) }
