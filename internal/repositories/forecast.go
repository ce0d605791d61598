package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"farm-advisor/internal/models"
	"farm-advisor/internal/observability"
	"farm-advisor/pkg/observe"
)

// ForecastRepository fetches the OpenWeather 5-day/3-hour forecast in metric
// units.
type ForecastRepository struct {
	BaseURL    string
	APIKey     string
	httpClient HTTPClient
	l          *observe.Logger
	m          *observability.Metrics
}

func NewForecastRepository(baseURL, apiKey string, l *observe.Logger, m *observability.Metrics, httpClient HTTPClient) *ForecastRepository {
	return &ForecastRepository{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		httpClient: httpClient,
		l:          l,
		m:          m,
	}
}

func (f *ForecastRepository) Name() string {
	return "openweather-forecast"
}

type forecastResponse struct {
	List []forecastEntry `json:"list"`
}

type forecastEntry struct {
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		ThreeH float64 `json:"3h"`
	} `json:"rain"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

const forecastTimeLayout = "2006-01-02 15:04:05"

// FetchForecast returns the ordered 3-hour readings for the coordinates. A
// response without the expected list (quota exceeded, invalid key) maps to
// models.ErrForecastUnavailable. No retry, no backoff.
func (f *ForecastRepository) FetchForecast(ctx context.Context, lat, lon float64) ([]models.ForecastPoint, error) {
	params := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(lon, 'f', -1, 64)},
		"units": {"metric"},
		"appid": {f.APIKey},
	}
	requestURL := f.BaseURL + "?" + params.Encode()

	f.l.Info("making forecast API request", map[string]any{
		"lat": lat,
		"lon": lon,
	})

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.m.UpstreamRequests.WithLabelValues("forecast", "error").Inc()
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	f.m.UpstreamDuration.WithLabelValues("forecast").Observe(time.Since(start).Seconds())

	f.l.Info("received forecast API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.m.UpstreamRequests.WithLabelValues("forecast", "error").Inc()
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		f.m.UpstreamRequests.WithLabelValues("forecast", "error").Inc()
		f.l.Warning("forecast request rejected", map[string]any{
			"status": resp.StatusCode,
		})
		return nil, errors.Wrapf(models.ErrForecastUnavailable, "HTTP error (status %d)", resp.StatusCode)
	}

	var response forecastResponse
	if err = json.Unmarshal(body, &response); err != nil {
		f.m.UpstreamRequests.WithLabelValues("forecast", "error").Inc()
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if len(response.List) == 0 {
		f.m.UpstreamRequests.WithLabelValues("forecast", "empty").Inc()
		return nil, models.ErrForecastUnavailable
	}

	points, err := forecastPoints(response.List)
	if err != nil {
		f.m.UpstreamRequests.WithLabelValues("forecast", "error").Inc()
		return nil, fmt.Errorf("failed to build forecast: %w", err)
	}

	f.m.UpstreamRequests.WithLabelValues("forecast", "success").Inc()

	f.l.Info("parsed forecast response", map[string]any{
		"entries": len(points),
	})

	return points, nil
}

// forecastPoints converts raw API entries into readings. The transform is
// total over well-formed input; a malformed entry fails the whole batch
// rather than being silently skipped.
func forecastPoints(entries []forecastEntry) ([]models.ForecastPoint, error) {
	points := make([]models.ForecastPoint, 0, len(entries))

	for i, e := range entries {
		ts, err := time.Parse(forecastTimeLayout, e.DtTxt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp %q (entry %d): %w", e.DtTxt, i, err)
		}
		if len(e.Weather) == 0 {
			return nil, fmt.Errorf("entry %d has no weather condition", i)
		}

		points = append(points, models.ForecastPoint{
			Time:        ts,
			Temp:        e.Main.Temp,
			Humidity:    e.Main.Humidity,
			Wind:        e.Wind.Speed,
			Rain3h:      e.Rain.ThreeH, // absent rain block decodes to 0.0
			Weather:     e.Weather[0].Main,
			Description: e.Weather[0].Description,
		})
	}

	return points, nil
}
