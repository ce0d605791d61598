package models

import (
	"fmt"
	"time"
)

// Location is a geocoded place: coordinates plus a human-readable label
// (place name, optionally state and country, comma-joined).
type Location struct {
	Lat   float64 `json:"lat" example:"10.9601"`
	Lon   float64 `json:"lon" example:"79.3845"`
	Label string  `json:"label" example:"Kumbakonam, Tamil Nadu, IN"`
}

func (l *Location) RequestParams() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f", l.Lat, l.Lon)
}

// ForecastPoint is one 3-hour forecast reading in metric units.
type ForecastPoint struct {
	Time        time.Time `json:"time"`
	Temp        float64   `json:"temp"`
	Humidity    float64   `json:"humidity"`
	Wind        float64   `json:"wind"`
	Rain3h      float64   `json:"rain_3h"`
	Weather     string    `json:"weather"`
	Description string    `json:"description"`
}

// Date returns the calendar date of the reading, used for daily grouping.
func (p ForecastPoint) Date() time.Time {
	return time.Date(p.Time.Year(), p.Time.Month(), p.Time.Day(), 0, 0, 0, 0, p.Time.Location())
}

// DailyAggregate is a calendar-day rollup of ForecastPoints sharing a date.
type DailyAggregate struct {
	Date         time.Time `json:"date"`
	TempMin      float64   `json:"temp_min"`
	TempMax      float64   `json:"temp_max"`
	TempAvg      float64   `json:"temp_avg"`
	HumidityMean float64   `json:"humidity_mean"`
	WindMean     float64   `json:"wind_mean"`
	RainTotal    float64   `json:"rain_total"`
}
