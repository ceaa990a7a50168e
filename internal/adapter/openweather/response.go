package openweather

import (
	"math"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
)

// OpenWeatherMap API response types.

type place struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

type forecastResponse struct {
	City struct {
		Name     string `json:"name"`
		Timezone int    `json:"timezone"` // seconds east of UTC
	} `json:"city"`
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	Dt    int64  `json:"dt"`
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Icon        string `json:"icon"`
		Description string `json:"description"`
	} `json:"weather"`
}

func (i forecastItem) toSample() domain.ForecastSample {
	s := domain.ForecastSample{
		Timestamp:     i.Dt,
		TimestampText: i.DtTxt,
		TemperatureF:  i.Main.Temp,
		WindMph:       i.Wind.Speed,
		HumidityPct:   int(math.Round(i.Main.Humidity)),
	}
	if len(i.Weather) > 0 {
		s.IconCode = i.Weather[0].Icon
		s.Description = i.Weather[0].Description
	}
	return s
}
