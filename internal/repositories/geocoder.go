package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"farm-advisor/internal/models"
	"farm-advisor/internal/observability"
	"farm-advisor/pkg/observe"
)

// GeoRepository resolves place names through the OpenWeather Geocoding API.
type GeoRepository struct {
	BaseURL    string
	APIKey     string
	httpClient HTTPClient
	l          *observe.Logger
	m          *observability.Metrics
}

func NewGeoRepository(baseURL, apiKey string, l *observe.Logger, m *observability.Metrics, httpClient HTTPClient) *GeoRepository {
	return &GeoRepository{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		httpClient: httpClient,
		l:          l,
		m:          m,
	}
}

func (g *GeoRepository) Name() string {
	return "openweather-geocoding"
}

type geoMatch struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	State   string  `json:"state"`
	Country string  `json:"country"`
}

// Geocode requests the single best match for the place name. An empty result
// set maps to models.ErrPlaceNotFound; transport and parse failures are
// wrapped as generic lookup errors. No retry.
func (g *GeoRepository) Geocode(ctx context.Context, place string) (models.Location, error) {
	params := url.Values{
		"q":     {place},
		"limit": {"1"},
		"appid": {g.APIKey},
	}
	requestURL := g.BaseURL + "?" + params.Encode()

	g.l.Info("making geocoding API request", map[string]any{
		"place": place,
	})

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.m.UpstreamRequests.WithLabelValues("geocode", "error").Inc()
		return models.Location{}, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	g.m.UpstreamDuration.WithLabelValues("geocode").Observe(time.Since(start).Seconds())

	g.l.Info("received geocoding API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		g.m.UpstreamRequests.WithLabelValues("geocode", "error").Inc()
		return models.Location{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		g.m.UpstreamRequests.WithLabelValues("geocode", "error").Inc()
		return models.Location{}, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var matches []geoMatch
	if err = json.Unmarshal(body, &matches); err != nil {
		g.m.UpstreamRequests.WithLabelValues("geocode", "error").Inc()
		return models.Location{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if len(matches) == 0 {
		g.m.UpstreamRequests.WithLabelValues("geocode", "empty").Inc()
		g.l.Warning("no geocoding match", map[string]any{"place": place})
		return models.Location{}, models.ErrPlaceNotFound
	}

	g.m.UpstreamRequests.WithLabelValues("geocode", "success").Inc()

	best := matches[0]
	return models.Location{
		Lat:   best.Lat,
		Lon:   best.Lon,
		Label: displayLabel(best),
	}, nil
}

// displayLabel joins place, state, and country with commas, skipping empty
// components.
func displayLabel(m geoMatch) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{m.Name, m.State, m.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
