package httpadapter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/adapter/httpadapter"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/openweather"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/history"
	"github.com/couchcryptid/weather-lookup-service/internal/lookup"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/couchcryptid/weather-lookup-service/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockLookups struct {
	result  lookup.Result
	err     error
	queries []string
	reruns  []int
}

func (m *mockLookups) Search(_ context.Context, raw string) (lookup.Result, error) {
	m.queries = append(m.queries, raw)
	return m.result, m.err
}

func (m *mockLookups) Rerun(_ context.Context, n int) (lookup.Result, error) {
	m.reruns = append(m.reruns, n)
	return m.result, m.err
}

type staticHistory []string

func (h staticHistory) List() []string { return h }

func testResult() lookup.Result {
	return lookup.Result{
		Query:    "Austin",
		Location: domain.Location{Name: "Austin", State: "Texas", Country: "US", Lat: 30.2672, Lon: -97.7431},
		View: render.View{
			City:  "Austin",
			Today: time.Date(2024, 4, 26, 0, 0, 0, 0, time.UTC),
			Current: domain.ForecastSample{
				TimestampText: "2024-04-26 15:00:00",
				TemperatureF:  78.4,
				WindMph:       9.2,
				HumidityPct:   61,
				IconCode:      "02d",
			},
			Daily: []domain.DailySummary{
				{Date: "2024-04-27", Sample: domain.ForecastSample{TemperatureF: 80, IconCode: "01d"}},
				{Date: "2024-04-28", Sample: domain.ForecastSample{TemperatureF: 82, IconCode: "10d"}},
			},
		},
		AddedToHistory: true,
	}
}

func newTestServer(lookups *mockLookups, history staticHistory, readyErr error) *httpadapter.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpadapter.NewServer(":0", lookups, history, &mockReadiness{err: readyErr}, logger)
}

func serve(srv *httpadapter.Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := serve(newTestServer(&mockLookups{}, nil, nil), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReflectsChecker(t *testing.T) {
	rec := serve(newTestServer(&mockLookups{}, nil, nil), http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(newTestServer(&mockLookups{}, nil, fmt.Errorf("history not loaded")), http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(newTestServer(&mockLookups{}, nil, nil), http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestWeather_Success(t *testing.T) {
	lookups := &mockLookups{result: testResult()}
	rec := serve(newTestServer(lookups, nil, nil), http.MethodGet, "/api/weather?q=Austin")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, []string{"Austin"}, lookups.queries)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Austin", body["city"])
	assert.Equal(t, "2024-04-26", body["today"])
	assert.Equal(t, true, body["added_to_history"])

	current := body["current"].(map[string]any)
	assert.Equal(t, 78.4, current["temp_f"])
	assert.Equal(t, "https://openweathermap.org/img/w/02d.png", current["icon_url"])

	daily := body["daily"].([]any)
	require.Len(t, daily, 2)
	first := daily[0].(map[string]any)
	assert.Equal(t, "2024-04-27", first["date"])
	assert.Equal(t, 80.0, first["temp_f"])
}

func TestWeather_ErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantMsg string
	}{
		{"validation", fmt.Errorf("%w: please enter a valid location", domain.ErrValidation), http.StatusBadRequest, "Please enter a valid location."},
		{"not found", fmt.Errorf("geocode %q: %w", "Nowhere", domain.ErrNotFound), http.StatusNotFound, "Location not found"},
		{"network", fmt.Errorf("%w: forecast request: timeout", domain.ErrNetwork), http.StatusBadGateway, "Error fetching data. Please try again."},
		{"other", fmt.Errorf("present: broken pipe"), http.StatusInternalServerError, "Internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestServer(&mockLookups{err: tt.err}, nil, nil), http.MethodGet, "/api/weather?q=x")
			assert.Equal(t, tt.want, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestWeather_ProviderUnreachableHidesAPIKey(t *testing.T) {
	const apiKey = "SECRET-API-KEY"
	upstream := httptest.NewServer(http.NotFoundHandler())
	upstream.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	store := history.NewStore(history.NewMemoryKV(), logger, metrics)
	require.NoError(t, store.Load(context.Background()))
	client := openweather.NewClient(apiKey, upstream.URL, time.Second, metrics, logger)
	svc := lookup.New(client, client, store, logger, metrics)

	var logs bytes.Buffer
	srv := httpadapter.NewServer(":0", svc, store, store, slog.New(slog.NewTextHandler(&logs, nil)))
	rec := serve(srv, http.MethodGet, "/api/weather?q=Austin")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), apiKey)
	assert.NotContains(t, logs.String(), apiKey)
	assert.NotEmpty(t, logs.String())
}

func TestWeatherCard_PNG(t *testing.T) {
	rec := serve(newTestServer(&mockLookups{result: testResult()}, nil, nil), http.MethodGet, "/api/weather.png?q=Austin")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	_, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
}

func TestWeatherCard_NotFound(t *testing.T) {
	lookups := &mockLookups{err: fmt.Errorf("geocode: %w", domain.ErrNotFound)}
	rec := serve(newTestServer(lookups, nil, nil), http.MethodGet, "/api/weather.png?q=Nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistory_List(t *testing.T) {
	rec := serve(newTestServer(&mockLookups{}, staticHistory{"Denver", "Austin"}, nil), http.MethodGet, "/api/history")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entries":["Denver","Austin"]}`, rec.Body.String())
}

func TestHistory_EmptyIsArray(t *testing.T) {
	rec := serve(newTestServer(&mockLookups{}, nil, nil), http.MethodGet, "/api/history")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entries":[]}`, rec.Body.String())
}

func TestRerun(t *testing.T) {
	lookups := &mockLookups{result: testResult()}
	rec := serve(newTestServer(lookups, nil, nil), http.MethodPost, "/api/history/2/search")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{2}, lookups.reruns)
}

func TestRerun_InvalidIndex(t *testing.T) {
	for _, n := range []string{"zero", "0", "-1"} {
		lookups := &mockLookups{}
		rec := serve(newTestServer(lookups, nil, nil), http.MethodPost, "/api/history/"+n+"/search")
		assert.Equal(t, http.StatusBadRequest, rec.Code, n)
		assert.Empty(t, lookups.reruns)
	}
}

func TestRerun_WrongMethod(t *testing.T) {
	rec := serve(newTestServer(&mockLookups{}, nil, nil), http.MethodGet, "/api/history/1/search")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
