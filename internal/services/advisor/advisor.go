package advisor

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"farm-advisor/internal/models"
	"farm-advisor/internal/observability"
	"farm-advisor/internal/repositories"
	"farm-advisor/pkg/observe"
)

// Scenario slider bounds, in degrees C and percent.
const (
	MinDeltaTemp    = -3.0
	MaxDeltaTemp    = 4.0
	MinDeltaRainPct = -40.0
	MaxDeltaRainPct = 40.0
)

// ScenarioRequest perturbs the advisory inputs before re-scoring: a
// temperature offset and a rainfall percentage offset. Humidity is kept
// unchanged.
type ScenarioRequest struct {
	DeltaTemp    float64
	DeltaRainPct float64
}

// Service runs the advisory pipeline: geocode, fetch, aggregate, score.
type Service struct {
	geo      repositories.Geocoder
	forecast repositories.ForecastProvider
	l        *observe.Logger
	m        *observability.Metrics
}

func NewService(geo repositories.Geocoder, forecast repositories.ForecastProvider, l *observe.Logger, m *observability.Metrics) *Service {
	return &Service{
		geo:      geo,
		forecast: forecast,
		l:        l,
		m:        m,
	}
}

// Advise computes the full dashboard payload for a place name. Lookup and
// upstream failures abort the computation; missing window data flows through
// as "no data" sentinels instead.
func (s *Service) Advise(ctx context.Context, place string, scenario *ScenarioRequest) (*models.Advisory, error) {
	start := time.Now()

	s.l.Info("starting advisory run", map[string]any{
		"place": place,
	})

	location, err := s.geo.Geocode(ctx, place)
	if err != nil {
		if errors.Is(err, models.ErrPlaceNotFound) {
			s.m.AdvisoryRequests.WithLabelValues("not_found").Inc()
		} else {
			s.m.AdvisoryRequests.WithLabelValues("error").Inc()
		}
		s.l.Warning("geocoding failed", map[string]any{"place": place, "err": err.Error()})
		return nil, err
	}

	points, err := s.forecast.FetchForecast(ctx, location.Lat, location.Lon)
	if err != nil {
		if errors.Is(err, models.ErrForecastUnavailable) {
			s.m.AdvisoryRequests.WithLabelValues("unavailable").Inc()
		} else {
			s.m.AdvisoryRequests.WithLabelValues("error").Inc()
		}
		s.l.Warning("forecast fetch failed", map[string]any{
			"place": place,
			"lat":   location.Lat,
			"lon":   location.Lon,
			"err":   err.Error(),
		})
		return nil, err
	}

	daily := Aggregate(points)
	inputs := WindowInputs(daily, AdvisoryWindowDays)

	pest := PestDiseaseRisk(inputs)
	yieldScore := YieldPotentialIndex(inputs)

	advisory := &models.Advisory{
		Location:   location,
		Inputs:     inputs,
		Crop:       CropRecommendation(inputs),
		Irrigation: IrrigationAdvice(inputs),
		Pest:       pest,
		YieldScore: yieldScore,
		YieldBadge: Badge(float64(yieldScore), true),
		Tips:       ActionTips(inputs),
		Hourly:     points,
		Daily:      daily,
	}

	if scenario != nil {
		advisory.Scenario = s.runScenario(inputs, *scenario, yieldScore)
	}

	s.m.AdvisoryRequests.WithLabelValues("success").Inc()
	s.m.AdvisoryDuration.Observe(time.Since(start).Seconds())

	s.l.Info("completed advisory run", map[string]any{
		"place":       place,
		"label":       location.Label,
		"days":        len(daily),
		"yield_score": yieldScore,
		"pest_score":  pest.Score,
	})

	return advisory, nil
}

// runScenario re-scores yield with perturbed inputs. Absent inputs stay
// absent; the perturbation never invents data.
func (s *Service) runScenario(inputs models.AdvisoryInputs, req ScenarioRequest, baseline int) *models.Scenario {
	req.DeltaTemp = clamp(req.DeltaTemp, MinDeltaTemp, MaxDeltaTemp)
	req.DeltaRainPct = clamp(req.DeltaRainPct, MinDeltaRainPct, MaxDeltaRainPct)

	perturbed := models.AdvisoryInputs{AvgHumidity: inputs.AvgHumidity}
	if inputs.AvgTemp != nil {
		t := *inputs.AvgTemp + req.DeltaTemp
		perturbed.AvgTemp = &t
	}
	if inputs.RainTotal != nil {
		r := *inputs.RainTotal * (1 + req.DeltaRainPct/100)
		perturbed.RainTotal = &r
	}

	return &models.Scenario{
		DeltaTemp:     req.DeltaTemp,
		DeltaRainPct:  req.DeltaRainPct,
		YieldScore:    YieldPotentialIndex(perturbed),
		BaselineScore: baseline,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
