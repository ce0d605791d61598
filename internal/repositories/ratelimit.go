package repositories

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"farm-advisor/internal/models"
)

// RateLimitedGeocoder wraps a Geocoder with a token-bucket rate limiter so
// repeated renders cannot exhaust the upstream quota.
type RateLimitedGeocoder struct {
	inner   Geocoder
	limiter *rate.Limiter
}

// NewRateLimitedGeocoder creates a rate limited geocoder. rps may be
// fractional for less than one request per second.
func NewRateLimitedGeocoder(inner Geocoder, rps float64, burst int) *RateLimitedGeocoder {
	return &RateLimitedGeocoder{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedGeocoder) Geocode(ctx context.Context, place string) (models.Location, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.Location{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.inner.Geocode(ctx, place)
}

// RateLimitedForecastProvider wraps a ForecastProvider with rate limiting.
type RateLimitedForecastProvider struct {
	inner   ForecastProvider
	limiter *rate.Limiter
}

func NewRateLimitedForecastProvider(inner ForecastProvider, rps float64, burst int) *RateLimitedForecastProvider {
	return &RateLimitedForecastProvider{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedForecastProvider) FetchForecast(ctx context.Context, lat, lon float64) ([]models.ForecastPoint, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.inner.FetchForecast(ctx, lat, lon)
}

var (
	_ Geocoder         = (*RateLimitedGeocoder)(nil)
	_ ForecastProvider = (*RateLimitedForecastProvider)(nil)
	_ Geocoder         = (*CachedGeocoder)(nil)
	_ ForecastProvider = (*CachedForecastProvider)(nil)
)
