package repositories

import (
	"context"
	"net/http"
	"time"

	"farm-advisor/config"
	"farm-advisor/internal/models"
	"farm-advisor/internal/observability"
	"farm-advisor/pkg/observe"
)

// HTTPClient abstracts the HTTP transport so tests can inject their own.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Geocoder resolves a free-text place name to coordinates and a label.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (models.Location, error)
}

// ForecastProvider fetches the 5-day/3-hour forecast for coordinates.
type ForecastProvider interface {
	FetchForecast(ctx context.Context, lat, lon float64) ([]models.ForecastPoint, error)
}

// InitWeatherRepositories builds the upstream client stack: raw OpenWeather
// clients wrapped with rate limiting, then with time-bounded caches.
func InitWeatherRepositories(cfg *config.Config, l *observe.Logger, m *observability.Metrics) (Geocoder, ForecastProvider) {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Weather.RequestTimeout) * time.Second,
	}

	var geo Geocoder = NewGeoRepository(cfg.Weather.GeoBaseURL, cfg.Weather.APIKey, l, m, httpClient)
	var forecast ForecastProvider = NewForecastRepository(cfg.Weather.ForecastURL, cfg.Weather.APIKey, l, m, httpClient)

	geo = NewRateLimitedGeocoder(geo, cfg.Weather.RateRPS, cfg.Weather.RateBurst)
	forecast = NewRateLimitedForecastProvider(forecast, cfg.Weather.RateRPS, cfg.Weather.RateBurst)

	geo = NewCachedGeocoder(geo, time.Duration(cfg.Weather.GeoCacheTTL)*time.Minute, m)
	forecast = NewCachedForecastProvider(forecast, time.Duration(cfg.Weather.ForecastCacheTTL)*time.Minute, m)

	return geo, forecast
}
