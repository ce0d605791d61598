package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"farm-advisor/internal/models"
)

func ptr(v float64) *float64 { return &v }

func inputs(t, h, r float64) models.AdvisoryInputs {
	return models.AdvisoryInputs{AvgTemp: ptr(t), AvgHumidity: ptr(h), RainTotal: ptr(r)}
}

func TestCropRecommendation_RulePriority(t *testing.T) {
	// (27, 65, 50) matches the first rule before any later rule could apply.
	assert.Equal(t, CropRiceMaize, CropRecommendation(inputs(27, 65, 50)))
}

func TestCropRecommendation_Categories(t *testing.T) {
	assert.Equal(t, CropPulsesGroundnut, CropRecommendation(inputs(22, 60, 30)))
	assert.Equal(t, CropWheatBarley, CropRecommendation(inputs(15, 50, 10)))
	// Hot but dry: falls through to the mixed-conditions category.
	assert.Equal(t, CropVegetablesMix, CropRecommendation(inputs(30, 50, 5)))
}

func TestCropRecommendation_BoundaryValues(t *testing.T) {
	// Exactly on rule-1 thresholds.
	assert.Equal(t, CropRiceMaize, CropRecommendation(inputs(26, 60, 40)))
	// Temp 26 with rule-1 rain/humidity unmet cannot match rule 2 either.
	assert.Equal(t, CropVegetablesMix, CropRecommendation(inputs(26, 50, 30)))
	// Upper-exclusive bounds of rule 2.
	assert.Equal(t, CropPulsesGroundnut, CropRecommendation(inputs(20, 75, 20)))
}

func TestCropRecommendation_NoData(t *testing.T) {
	assert.Equal(t, models.NoDataMessage, CropRecommendation(models.AdvisoryInputs{}))
	assert.Equal(t, models.NoDataMessage, CropRecommendation(models.AdvisoryInputs{
		AvgTemp:     ptr(25),
		AvgHumidity: ptr(60),
	}))
}

func TestIrrigationAdvice_ReferenceValues(t *testing.T) {
	// base = max(0, 0.35*25 - 0.12*(70/10)) = 7.91
	// effective rain per day = 30/3 = 10
	// result = max(0, 7.91 - 6) = 1.91
	got := IrrigationAdvice(inputs(25, 70, 30))
	assert.InDelta(t, 1.91, got.MmPerDay, 1e-9)
	assert.NotEqual(t, models.NoDataMessage, got.Tip)
}

func TestIrrigationAdvice_FloorsAtZero(t *testing.T) {
	// Heavy rain wipes out the base requirement.
	got := IrrigationAdvice(inputs(20, 60, 120))
	assert.Equal(t, 0.0, got.MmPerDay)

	// Cold and humid: base itself clamps at zero.
	got = IrrigationAdvice(inputs(1, 90, 0))
	assert.Equal(t, 0.0, got.MmPerDay)
}

func TestIrrigationAdvice_NoData(t *testing.T) {
	got := IrrigationAdvice(models.AdvisoryInputs{AvgTemp: ptr(25)})
	assert.Equal(t, 0.0, got.MmPerDay)
	assert.Equal(t, models.NoDataMessage, got.Tip)
}

func TestPestDiseaseRisk_AllConditions(t *testing.T) {
	got := PestDiseaseRisk(inputs(25, 80, 25))
	assert.Equal(t, 100, got.Score)
	assert.Contains(t, got.Message, "High risk")
	assert.Equal(t, models.BadgeRed, got.Badge)
}

func TestPestDiseaseRisk_Bands(t *testing.T) {
	// Only humidity triggers: 40 points, medium band.
	got := PestDiseaseRisk(inputs(35, 80, 5))
	assert.Equal(t, 40, got.Score)
	assert.Contains(t, got.Message, "Medium risk")
	assert.Equal(t, models.BadgeAmber, got.Badge)

	// Only temperature triggers: 35 points, low band.
	got = PestDiseaseRisk(inputs(25, 50, 5))
	assert.Equal(t, 35, got.Score)
	assert.Contains(t, got.Message, "Low risk")
	assert.Equal(t, models.BadgeGreen, got.Badge)
}

func TestPestDiseaseRisk_NoData(t *testing.T) {
	got := PestDiseaseRisk(models.AdvisoryInputs{AvgHumidity: ptr(80)})
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, models.NoDataMessage, got.Message)
}

func TestYieldPotentialIndex_BestBands(t *testing.T) {
	// All three inputs in their best band: 45+30+25 = 100.
	assert.Equal(t, 100, YieldPotentialIndex(inputs(25, 60, 20)))
}

func TestYieldPotentialIndex_WorstBands(t *testing.T) {
	// All three in the poor band: 15+10+5 = 30.
	assert.Equal(t, 30, YieldPotentialIndex(inputs(40, 95, 100)))
}

func TestYieldPotentialIndex_Range(t *testing.T) {
	for _, tc := range []struct{ t, h, r float64 }{
		{25, 60, 20}, {18, 40, 0}, {33, 86, 81}, {-5, 10, 200}, {28, 75, 40},
	} {
		s := YieldPotentialIndex(inputs(tc.t, tc.h, tc.r))
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, 100)
	}
}

func TestYieldPotentialIndex_MonotoneTowardBestBand(t *testing.T) {
	// Moving temperature from poor through good into the best band never
	// lowers the score when the other inputs stay fixed.
	poor := YieldPotentialIndex(inputs(10, 60, 20))
	good := YieldPotentialIndex(inputs(19, 60, 20))
	best := YieldPotentialIndex(inputs(25, 60, 20))
	assert.Less(t, poor, good)
	assert.Less(t, good, best)
}

func TestYieldPotentialIndex_NoData(t *testing.T) {
	assert.Equal(t, 0, YieldPotentialIndex(models.AdvisoryInputs{}))
	assert.Equal(t, 0, YieldPotentialIndex(models.AdvisoryInputs{
		AvgTemp:   ptr(25),
		RainTotal: ptr(20),
	}))
}

func TestBadge(t *testing.T) {
	assert.Equal(t, models.BadgeGreen, Badge(70, true))
	assert.Equal(t, models.BadgeAmber, Badge(40, true))
	assert.Equal(t, models.BadgeRed, Badge(39, true))

	assert.Equal(t, models.BadgeRed, Badge(70, false))
	assert.Equal(t, models.BadgeAmber, Badge(69, false))
	assert.Equal(t, models.BadgeGreen, Badge(39, false))
}

func TestActionTips(t *testing.T) {
	tips := ActionTips(inputs(33, 85, 35))
	assert.Len(t, tips, 3)

	tips = ActionTips(inputs(25, 60, 10))
	assert.Len(t, tips, 1)
	assert.Contains(t, tips[0], "Conditions are normal")

	// Missing inputs are skipped, not treated as zero readings.
	tips = ActionTips(models.AdvisoryInputs{AvgHumidity: ptr(85)})
	assert.Len(t, tips, 1)
	assert.Contains(t, tips[0], "Avoid evening irrigation")
}
