package models

// NoDataMessage is the sentinel rendered when an advisory function is called
// with a missing upstream input. It is a distinct outcome, not a zero reading.
const NoDataMessage = "Data not available"

// AdvisoryInputs are the trailing-window weather signals feeding the scorers.
// Nil fields mean the upstream data was absent; scorers must not coerce to 0.
type AdvisoryInputs struct {
	AvgTemp     *float64 `json:"avg_temp"`
	AvgHumidity *float64 `json:"avg_humidity"`
	RainTotal   *float64 `json:"rain_total"`
}

// Complete reports whether every input is present.
func (in AdvisoryInputs) Complete() bool {
	return in.AvgTemp != nil && in.AvgHumidity != nil && in.RainTotal != nil
}

// BadgeTier is the three-tier color classification for a score.
type BadgeTier string

const (
	BadgeGreen BadgeTier = "green"
	BadgeAmber BadgeTier = "amber"
	BadgeRed   BadgeTier = "red"
)

// Irrigation is a daily irrigation recommendation in mm/day with one tip.
type Irrigation struct {
	MmPerDay float64 `json:"mm_per_day"`
	Tip      string  `json:"tip"`
}

// PestRisk is a 0-100 pest/disease risk score with a banded message.
type PestRisk struct {
	Score   int       `json:"score"`
	Message string    `json:"message"`
	Badge   BadgeTier `json:"badge"`
}

// Scenario perturbs the advisory inputs: a temperature offset in degrees C
// and a rainfall offset in percent. Humidity is kept unchanged.
type Scenario struct {
	DeltaTemp     float64 `json:"delta_temp"`
	DeltaRainPct  float64 `json:"delta_rain_pct"`
	YieldScore    int     `json:"yield_score"`
	BaselineScore int     `json:"baseline_score"`
}

// Advisory is the full dashboard payload for one place.
type Advisory struct {
	Location   Location         `json:"location"`
	Inputs     AdvisoryInputs   `json:"inputs"`
	Crop       string           `json:"crop"`
	Irrigation Irrigation       `json:"irrigation"`
	Pest       PestRisk         `json:"pest"`
	YieldScore int              `json:"yield_score"`
	YieldBadge BadgeTier        `json:"yield_badge"`
	Tips       []string         `json:"tips"`
	Hourly     []ForecastPoint  `json:"hourly"`
	Daily      []DailyAggregate `json:"daily"`
	Scenario   *Scenario        `json:"scenario,omitempty"`
}
