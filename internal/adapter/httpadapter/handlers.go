package httpadapter

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/lookup"
	"github.com/couchcryptid/weather-lookup-service/internal/render"
)

type sampleResponse struct {
	Time         string  `json:"time"`
	TemperatureF float64 `json:"temp_f"`
	WindMph      float64 `json:"wind_mph"`
	HumidityPct  int     `json:"humidity_pct"`
	Icon         string  `json:"icon"`
	IconURL      string  `json:"icon_url"`
	Description  string  `json:"description,omitempty"`
}

type dailyResponse struct {
	Date string `json:"date"`
	sampleResponse
}

type weatherResponse struct {
	Query          string          `json:"query"`
	City           string          `json:"city"`
	Location       domain.Location `json:"location"`
	Today          string          `json:"today"`
	Current        sampleResponse  `json:"current"`
	Daily          []dailyResponse `json:"daily"`
	AddedToHistory bool            `json:"added_to_history"`
}

type historyResponse struct {
	Entries []string `json:"entries"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toSampleResponse(s domain.ForecastSample) sampleResponse {
	return sampleResponse{
		Time:         s.TimestampText,
		TemperatureF: s.TemperatureF,
		WindMph:      s.WindMph,
		HumidityPct:  s.HumidityPct,
		Icon:         s.IconCode,
		IconURL:      render.IconURL(s.IconCode),
		Description:  s.Description,
	}
}

func toWeatherResponse(res lookup.Result) weatherResponse {
	daily := make([]dailyResponse, 0, len(res.View.Daily))
	for _, d := range res.View.Daily {
		daily = append(daily, dailyResponse{Date: d.Date, sampleResponse: toSampleResponse(d.Sample)})
	}
	return weatherResponse{
		Query:          res.Query,
		City:           res.View.City,
		Location:       res.Location,
		Today:          res.View.Today.Format("2006-01-02"),
		Current:        toSampleResponse(res.View.Current),
		Daily:          daily,
		AddedToHistory: res.AddedToHistory,
	}
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	res, err := s.lookups.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, toWeatherResponse(res))
}

func (s *Server) handleWeatherCard(w http.ResponseWriter, r *http.Request) {
	res, err := s.lookups.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := render.WriteCard(&buf, res.View); err != nil {
		s.writeError(w, r, fmt.Errorf("render card: %w", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	entries := s.history.List()
	if entries == nil {
		entries = []string{}
	}
	sharedobs.WriteJSON(w, http.StatusOK, historyResponse{Entries: entries})
}

func (s *Server) handleRerun(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || n < 1 {
		s.writeError(w, r, fmt.Errorf("%w: history index must be a positive integer", domain.ErrValidation))
		return
	}
	res, err := s.lookups.Rerun(r.Context(), n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, toWeatherResponse(res))
}

// errorMessages is the client-facing text per status. Error details stay in
// the logs.
var errorMessages = map[int]string{
	http.StatusBadRequest:          "Please enter a valid location.",
	http.StatusNotFound:            "Location not found",
	http.StatusBadGateway:          "Error fetching data. Please try again.",
	http.StatusInternalServerError: "Internal error",
}

// statusFor maps lookup failures onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Warn("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	sharedobs.WriteJSON(w, status, errorResponse{Error: errorMessages[status]})
}
