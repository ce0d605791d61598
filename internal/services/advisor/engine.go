package advisor

import (
	"math"

	"farm-advisor/internal/models"
)

// Heuristic scoring over the advisory window. Every function is stateless and
// returns its "no data" sentinel when any required input is absent; a missing
// reading is never treated as zero.

// Crop suggestion categories.
const (
	CropRiceMaize       = "Rice/Maize"
	CropPulsesGroundnut = "Pulses/Groundnut"
	CropWheatBarley     = "Wheat/Barley"
	CropVegetablesMix   = "Vegetables/Millets"
)

const irrigationTip = "Irrigate in early morning; avoid evening irrigation if humidity is high."

// CropRecommendation picks one of four fixed categories by first-matching
// rule, in this exact priority order.
func CropRecommendation(in models.AdvisoryInputs) string {
	if !in.Complete() {
		return models.NoDataMessage
	}
	t, h, r := *in.AvgTemp, *in.AvgHumidity, *in.RainTotal

	if t >= 26 && r >= 40 && h >= 60 {
		return CropRiceMaize
	}
	if 20 <= t && t < 26 && 20 <= r && r < 60 && 40 <= h && h <= 75 {
		return CropPulsesGroundnut
	}
	if t < 20 && r < 20 {
		return CropWheatBarley
	}
	// Mixed conditions fallback.
	return CropVegetablesMix
}

// IrrigationAdvice estimates mm/day of irrigation after discounting 60% of
// the forecast rain, spread over the advisory window.
func IrrigationAdvice(in models.AdvisoryInputs) models.Irrigation {
	if !in.Complete() {
		return models.Irrigation{MmPerDay: 0.0, Tip: models.NoDataMessage}
	}
	t, h, r := *in.AvgTemp, *in.AvgHumidity, *in.RainTotal

	base := math.Max(0.0, 0.35*t-0.12*(h/10))
	effectiveRainPerDay := r / 3.0
	mmDay := math.Max(0.0, base-0.6*effectiveRainPerDay)

	return models.Irrigation{
		MmPerDay: math.Round(mmDay*100) / 100,
		Tip:      irrigationTip,
	}
}

// PestDiseaseRisk scores 0-100 with an additive point scheme; each condition
// contributes independently.
func PestDiseaseRisk(in models.AdvisoryInputs) models.PestRisk {
	if !in.Complete() {
		return models.PestRisk{Score: 0, Message: models.NoDataMessage, Badge: Badge(0, false)}
	}
	t, h, r := *in.AvgTemp, *in.AvgHumidity, *in.RainTotal

	score := 0
	if 20 <= t && t <= 30 {
		score += 35
	}
	if h >= 75 {
		score += 40
	}
	if r >= 20 {
		score += 25
	}
	if score > 100 {
		score = 100
	}

	var msg string
	switch {
	case score >= 70:
		msg = "High risk: consider spacing, better airflow, and preventive fungicide if advised locally."
	case score >= 40:
		msg = "Medium risk: monitor closely; avoid late watering; remove infected leaves."
	default:
		msg = "Low risk: keep normal hygiene and watch weather changes."
	}

	return models.PestRisk{Score: score, Message: msg, Badge: Badge(float64(score), false)}
}

// YieldPotentialIndex sums three banded contributions (temperature max 45,
// humidity max 30, rainfall max 25), capped at 100. Returns 0 when any input
// is absent.
func YieldPotentialIndex(in models.AdvisoryInputs) int {
	if !in.Complete() {
		return 0
	}
	t, h, r := *in.AvgTemp, *in.AvgHumidity, *in.RainTotal

	s := 0

	switch {
	case 22 <= t && t <= 28:
		s += 45
	case (18 <= t && t < 22) || (28 < t && t <= 32):
		s += 30
	default:
		s += 15
	}

	switch {
	case 50 <= h && h <= 75:
		s += 30
	case (40 <= h && h < 50) || (75 < h && h <= 85):
		s += 20
	default:
		s += 10
	}

	switch {
	case 10 <= r && r <= 40:
		s += 25
	case (0 <= r && r < 10) || (40 < r && r <= 80):
		s += 15
	default:
		s += 5
	}

	if s > 100 {
		s = 100
	}
	return s
}

// Badge maps a score to a three-tier color. With goodHigh the green band is
// at the top; inverted for scores where high means trouble.
func Badge(score float64, goodHigh bool) models.BadgeTier {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		score = 0
	}
	if goodHigh {
		switch {
		case score >= 70:
			return models.BadgeGreen
		case score >= 40:
			return models.BadgeAmber
		default:
			return models.BadgeRed
		}
	}
	switch {
	case score >= 70:
		return models.BadgeRed
	case score >= 40:
		return models.BadgeAmber
	default:
		return models.BadgeGreen
	}
}

// ActionTips derives field tips from the window signals. Missing inputs are
// skipped rather than treated as zero readings.
func ActionTips(in models.AdvisoryInputs) []string {
	var tips []string

	if in.AvgHumidity != nil && *in.AvgHumidity > 80 {
		tips = append(tips, "Avoid evening irrigation; promote airflow to reduce leaf wetness.")
	}
	if in.RainTotal != nil && *in.RainTotal > 30 {
		tips = append(tips, "Expect runoff; consider split irrigation after rainy spell.")
	}
	if in.AvgTemp != nil && *in.AvgTemp > 32 {
		tips = append(tips, "High heat stress: mulching and mid-day shade can reduce evaporation.")
	}
	if len(tips) == 0 {
		tips = append(tips, "Conditions are normal. Keep standard field hygiene and monitor forecasts.")
	}
	return tips
}
