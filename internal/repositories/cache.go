package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"farm-advisor/internal/models"
	"farm-advisor/internal/observability"
)

// ttlEntry is one memoized value with its expiry instant.
type ttlEntry[V any] struct {
	value  V
	expiry time.Time
}

// ttlCache is a thread-safe map of (key, value, expiry) entries. Expiry is
// checked deterministically on each lookup; there is no background sweeper.
type ttlCache[V any] struct {
	mu      sync.Mutex
	entries map[string]ttlEntry[V]
	ttl     time.Duration
	clock   clockwork.Clock
}

func newTTLCache[V any](ttl time.Duration, clock clockwork.Clock) *ttlCache[V] {
	return &ttlCache[V]{
		entries: make(map[string]ttlEntry[V]),
		ttl:     ttl,
		clock:   clock,
	}
}

func (c *ttlCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.clock.Now().After(e.expiry) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *ttlCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = ttlEntry[V]{
		value:  value,
		expiry: c.clock.Now().Add(c.ttl),
	}
}

// CachedGeocoder memoizes geocoding results keyed by place name.
type CachedGeocoder struct {
	inner Geocoder
	cache *ttlCache[models.Location]
	m     *observability.Metrics
}

func NewCachedGeocoder(inner Geocoder, ttl time.Duration, m *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner: inner,
		cache: newTTLCache[models.Location](ttl, clockwork.NewRealClock()),
		m:     m,
	}
}

// SetClock swaps the cache time source; tests inject a fake clock.
func (c *CachedGeocoder) SetClock(clock clockwork.Clock) {
	c.cache.clock = clock
}

func (c *CachedGeocoder) Geocode(ctx context.Context, place string) (models.Location, error) {
	if loc, ok := c.cache.get(place); ok {
		c.m.CacheLookups.WithLabelValues("geocode", "hit").Inc()
		return loc, nil
	}
	c.m.CacheLookups.WithLabelValues("geocode", "miss").Inc()

	loc, err := c.inner.Geocode(ctx, place)
	if err != nil {
		// Failures are not memoized so a later attempt can succeed.
		return loc, err
	}
	c.cache.put(place, loc)
	return loc, nil
}

// CachedForecastProvider memoizes forecasts keyed by coordinates.
type CachedForecastProvider struct {
	inner ForecastProvider
	cache *ttlCache[[]models.ForecastPoint]
	m     *observability.Metrics
}

func NewCachedForecastProvider(inner ForecastProvider, ttl time.Duration, m *observability.Metrics) *CachedForecastProvider {
	return &CachedForecastProvider{
		inner: inner,
		cache: newTTLCache[[]models.ForecastPoint](ttl, clockwork.NewRealClock()),
		m:     m,
	}
}

func (c *CachedForecastProvider) SetClock(clock clockwork.Clock) {
	c.cache.clock = clock
}

func (c *CachedForecastProvider) FetchForecast(ctx context.Context, lat, lon float64) ([]models.ForecastPoint, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)

	if points, ok := c.cache.get(key); ok {
		c.m.CacheLookups.WithLabelValues("forecast", "hit").Inc()
		return points, nil
	}
	c.m.CacheLookups.WithLabelValues("forecast", "miss").Inc()

	points, err := c.inner.FetchForecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, points)
	return points, nil
}
