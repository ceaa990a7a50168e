package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

const (
	geocodePath  = "/geo/1.0/direct"
	forecastPath = "/data/2.5/forecast"

	// geocodeLimit is the candidate count requested; only the first is used.
	geocodeLimit = 5
)

// Client implements domain.Geocoder and domain.ForecastSource using the
// OpenWeatherMap geocoding and 5 day / 3 hour forecast APIs.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

var (
	_ domain.Geocoder       = (*Client)(nil)
	_ domain.ForecastSource = (*Client)(nil)
)

// NewClient creates an OpenWeatherMap client rooted at baseURL.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Geocode resolves query to the first matching place.
func (c *Client) Geocode(ctx context.Context, query string) (domain.Location, error) {
	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(geocodeLimit)},
		"appid": {c.apiKey},
	}

	var places []place
	if err := c.getJSON(ctx, "geocode", geocodePath, params, &places); err != nil {
		return domain.Location{}, err
	}

	if len(places) == 0 {
		c.metrics.APIRequests.WithLabelValues("geocode", "empty").Inc()
		return domain.Location{}, fmt.Errorf("geocode %q: %w", query, domain.ErrNotFound)
	}
	c.metrics.APIRequests.WithLabelValues("geocode", "success").Inc()

	p := places[0]
	return domain.Location{
		Name:    p.Name,
		State:   p.State,
		Country: p.Country,
		Lat:     p.Lat,
		Lon:     p.Lon,
	}, nil
}

// Forecast fetches the imperial-unit forecast for loc.
func (c *Client) Forecast(ctx context.Context, loc domain.Location) (domain.Forecast, error) {
	params := url.Values{
		"lat":   {strconv.FormatFloat(loc.Lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(loc.Lon, 'f', -1, 64)},
		"units": {"imperial"},
		"appid": {c.apiKey},
	}

	var resp forecastResponse
	if err := c.getJSON(ctx, "forecast", forecastPath, params, &resp); err != nil {
		return domain.Forecast{}, err
	}
	c.metrics.APIRequests.WithLabelValues("forecast", "success").Inc()

	samples := make([]domain.ForecastSample, 0, len(resp.List))
	for _, item := range resp.List {
		samples = append(samples, item.toSample())
	}

	return domain.Forecast{
		City:           resp.City.Name,
		TimezoneOffset: resp.City.Timezone,
		Samples:        samples,
	}, nil
}

// getJSON issues a GET and decodes a 2xx body into out. Every failure is
// reported as domain.ErrNetwork.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	fullURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("%w: create %s request: %w", domain.ErrNetwork, endpoint, stripURL(err))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.APIDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.APIRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("%w: %s request: %w", domain.ErrNetwork, endpoint, stripURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.APIRequests.WithLabelValues(endpoint, "error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Debug("openweather API error", "endpoint", endpoint, "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: openweather %s API error: status %d", domain.ErrNetwork, endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.APIRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("%w: decode %s response: %w", domain.ErrNetwork, endpoint, err)
	}
	return nil
}

// stripURL drops the request URL from err. The URL carries the API key in
// its query string.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
