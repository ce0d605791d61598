package advisor

import (
	"farm-advisor/internal/models"
)

// AdvisoryWindowDays is the trailing window feeding the scorers: the next
// three forecast days.
const AdvisoryWindowDays = 3

// Aggregate rolls 3-hour readings up into per-day aggregates. Days appear in
// first-seen (chronological) order; the result is a pure function of the
// input set.
func Aggregate(points []models.ForecastPoint) []models.DailyAggregate {
	type bucket struct {
		index int
		count int
	}

	var daily []models.DailyAggregate
	buckets := make(map[string]*bucket)

	for _, p := range points {
		date := p.Date()
		key := date.Format("2006-01-02")

		b, ok := buckets[key]
		if !ok {
			daily = append(daily, models.DailyAggregate{
				Date:    date,
				TempMin: p.Temp,
				TempMax: p.Temp,
			})
			b = &bucket{index: len(daily) - 1}
			buckets[key] = b
		}

		d := &daily[b.index]
		if p.Temp < d.TempMin {
			d.TempMin = p.Temp
		}
		if p.Temp > d.TempMax {
			d.TempMax = p.Temp
		}
		// Accumulate sums; divided out below.
		d.TempAvg += p.Temp
		d.HumidityMean += p.Humidity
		d.WindMean += p.Wind
		d.RainTotal += p.Rain3h
		b.count++
	}

	for _, b := range buckets {
		d := &daily[b.index]
		n := float64(b.count)
		d.TempAvg /= n
		d.HumidityMean /= n
		d.WindMean /= n
	}

	return daily
}

// WindowInputs reduces the first `days` daily aggregates to the advisory
// inputs: mean of daily average temperatures, mean of daily mean humidity,
// and summed rainfall. An empty window yields absent inputs, not zeros.
func WindowInputs(daily []models.DailyAggregate, days int) models.AdvisoryInputs {
	if len(daily) == 0 || days <= 0 {
		return models.AdvisoryInputs{}
	}
	if days > len(daily) {
		days = len(daily)
	}

	var tempSum, humSum, rainSum float64
	for _, d := range daily[:days] {
		tempSum += d.TempAvg
		humSum += d.HumidityMean
		rainSum += d.RainTotal
	}

	n := float64(days)
	avgTemp := tempSum / n
	avgHum := humSum / n

	return models.AdvisoryInputs{
		AvgTemp:     &avgTemp,
		AvgHumidity: &avgHum,
		RainTotal:   &rainSum,
	}
}
