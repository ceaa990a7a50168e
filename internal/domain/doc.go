// Package domain models OpenWeatherMap location and forecast data and the
// rules for reducing a forecast to a five-day outlook.
//
// # Data Source
//
// Locations come from the OpenWeatherMap direct geocoding endpoint
// (/geo/1.0/direct), which returns an ordered array of candidate places for a
// free-text query. Only the first candidate is used.
//
// Forecasts come from the 5 day / 3 hour endpoint (/data/2.5/forecast),
// requested with units=imperial so temperatures are Fahrenheit and wind
// speeds are miles per hour.
//
// # Forecast Conventions
//
// Sample times:
//
//	"dt" is the slot time in Unix seconds (UTC).
//	"dt_txt" is the same instant formatted as "2006-01-02 15:04:05" in UTC.
//	Slots fall on a fixed three-hour UTC grid: 00, 03, 06, ... 21.
//
// City timezone:
//
//	"city.timezone" is the city's offset from UTC in seconds at fetch time,
//	e.g. -14400 for America/New_York in summer. It carries no DST rules.
//
// Icons:
//
//	"weather[0].icon" is a short code such as "10d" or "01n". The image lives
//	at https://openweathermap.org/img/w/<code>.png.
//
// # Daily Outlook
//
// A forecast of roughly forty samples is reduced to one representative
// sample per day for the five calendar days following today. The 15:00
// sample is the representative reading so that days compare like for like.
// See [SelectDailySummaries].
//
// Calendar arithmetic (start of day, hour of day) goes through the
// [Calendar] interface so the reducer does not depend on any particular zone.
// The default calendar is UTC, which lines up with the provider's own grid.
package domain
