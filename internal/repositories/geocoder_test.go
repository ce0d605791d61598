package repositories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farm-advisor/internal/models"
	"farm-advisor/internal/observability"
	"farm-advisor/pkg/observe"
)

func newGeoRepo(baseURL string) *GeoRepository {
	logger := observe.NewZapLogger("test-app")
	metrics := observability.NewMetricsForTesting()
	return NewGeoRepository(baseURL, "test-key", logger, metrics, http.DefaultClient)
}

func TestGeoRepository_Geocode_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Kumbakonam", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"Kumbakonam","lat":10.9601,"lon":79.3845,"country":"IN","state":"Tamil Nadu"}]`))
	}))
	defer mockServer.Close()

	repo := newGeoRepo(mockServer.URL)

	loc, err := repo.Geocode(context.Background(), "Kumbakonam")
	require.NoError(t, err)
	assert.InDelta(t, 10.9601, loc.Lat, 1e-9)
	assert.InDelta(t, 79.3845, loc.Lon, 1e-9)
	assert.Equal(t, "Kumbakonam, Tamil Nadu, IN", loc.Label)
}

func TestGeoRepository_Geocode_LabelOmitsEmptyParts(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"Singapore","lat":1.35,"lon":103.82,"country":"SG"}]`))
	}))
	defer mockServer.Close()

	repo := newGeoRepo(mockServer.URL)

	loc, err := repo.Geocode(context.Background(), "Singapore")
	require.NoError(t, err)
	assert.Equal(t, "Singapore, SG", loc.Label)
}

func TestGeoRepository_Geocode_NotFound(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	repo := newGeoRepo(mockServer.URL)

	_, err := repo.Geocode(context.Background(), "xxnoplacexx")
	assert.ErrorIs(t, err, models.ErrPlaceNotFound)
}

func TestGeoRepository_Geocode_InvalidJSON(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("invalid json"))
	}))
	defer mockServer.Close()

	repo := newGeoRepo(mockServer.URL)

	_, err := repo.Geocode(context.Background(), "Kumbakonam")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrPlaceNotFound)
}

func TestGeoRepository_Geocode_HTTPError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer mockServer.Close()

	repo := newGeoRepo(mockServer.URL)

	_, err := repo.Geocode(context.Background(), "Kumbakonam")
	assert.Error(t, err)
}

func TestGeoRepository_Geocode_TransportError(t *testing.T) {
	repo := newGeoRepo("http://invalid-url-that-does-not-exist.example")

	_, err := repo.Geocode(context.Background(), "Kumbakonam")
	assert.Error(t, err)
}

func TestGeoRepository_Geocode_ContextCancellation(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	repo := newGeoRepo(mockServer.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Geocode(ctx, "Kumbakonam")
	assert.Error(t, err)
}

func TestGeoRepository_Name(t *testing.T) {
	repo := &GeoRepository{}
	assert.Equal(t, "openweather-geocoding", repo.Name())
}
