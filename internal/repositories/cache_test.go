package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farm-advisor/internal/models"
	"farm-advisor/internal/observability"
)

type countingGeocoder struct {
	calls int
	loc   models.Location
	err   error
}

func (c *countingGeocoder) Geocode(ctx context.Context, place string) (models.Location, error) {
	c.calls++
	if c.err != nil {
		return models.Location{}, c.err
	}
	return c.loc, nil
}

type countingForecast struct {
	calls  int
	points []models.ForecastPoint
}

func (c *countingForecast) FetchForecast(ctx context.Context, lat, lon float64) ([]models.ForecastPoint, error) {
	c.calls++
	return c.points, nil
}

func TestCachedGeocoder_HitWithinTTL(t *testing.T) {
	inner := &countingGeocoder{loc: models.Location{Lat: 1, Lon: 2, Label: "Somewhere"}}
	clock := clockwork.NewFakeClock()

	cached := NewCachedGeocoder(inner, 30*time.Minute, observability.NewMetricsForTesting())
	cached.SetClock(clock)

	first, err := cached.Geocode(context.Background(), "Somewhere")
	require.NoError(t, err)

	second, err := cached.Geocode(context.Background(), "Somewhere")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedGeocoder_ExpiresAfterTTL(t *testing.T) {
	inner := &countingGeocoder{loc: models.Location{Lat: 1, Lon: 2, Label: "Somewhere"}}
	clock := clockwork.NewFakeClock()

	cached := NewCachedGeocoder(inner, 30*time.Minute, observability.NewMetricsForTesting())
	cached.SetClock(clock)

	_, err := cached.Geocode(context.Background(), "Somewhere")
	require.NoError(t, err)

	clock.Advance(31 * time.Minute)

	_, err = cached.Geocode(context.Background(), "Somewhere")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_KeyedByPlace(t *testing.T) {
	inner := &countingGeocoder{loc: models.Location{Lat: 1, Lon: 2, Label: "Somewhere"}}
	cached := NewCachedGeocoder(inner, 30*time.Minute, observability.NewMetricsForTesting())

	_, _ = cached.Geocode(context.Background(), "Alpha")
	_, _ = cached.Geocode(context.Background(), "Beta")
	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_DoesNotCacheFailures(t *testing.T) {
	inner := &countingGeocoder{err: models.ErrPlaceNotFound}
	cached := NewCachedGeocoder(inner, 30*time.Minute, observability.NewMetricsForTesting())

	_, err := cached.Geocode(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, models.ErrPlaceNotFound)

	_, err = cached.Geocode(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, models.ErrPlaceNotFound)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedForecastProvider_HitAndExpiry(t *testing.T) {
	inner := &countingForecast{points: []models.ForecastPoint{{Temp: 25}}}
	clock := clockwork.NewFakeClock()

	cached := NewCachedForecastProvider(inner, 15*time.Minute, observability.NewMetricsForTesting())
	cached.SetClock(clock)

	_, err := cached.FetchForecast(context.Background(), 10.96, 79.38)
	require.NoError(t, err)
	_, err = cached.FetchForecast(context.Background(), 10.96, 79.38)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	// A different coordinate pair is a different key.
	_, err = cached.FetchForecast(context.Background(), 52.52, 13.41)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)

	clock.Advance(16 * time.Minute)

	_, err = cached.FetchForecast(context.Background(), 10.96, 79.38)
	require.NoError(t, err)
	assert.Equal(t, 3, inner.calls)
}
