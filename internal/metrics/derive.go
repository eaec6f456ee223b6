// Package metrics computes the derived health quantities: net daily
// calories, the Army body-fat estimate, the reset-on-gap EMA trend, and the
// linear trends used by the charts.
package metrics

import (
	"math"

	"github.com/ternarybob/vitalog/internal/models"
)

// Fixed body dimensions for the body-fat estimator, in centimeters.
const (
	neckCm   = 41.5
	heightCm = 178.0
	cmPerIn  = 2.54
)

// NetCalories computes intake minus exercise for one diary day. Only the
// five canonical intake categories count; any other occasion label on the
// page is ignored. Absent values contribute zero.
func NetCalories(record *models.CalorieRecord) float64 {
	var intake float64
	for _, category := range models.IntakeCategories {
		intake += record.CategoryTotals[category]
	}

	var exercise float64
	if record.ExerciseKcal != nil {
		exercise = *record.ExerciseKcal
	}
	return intake - exercise
}

// BodyFatPct applies the Army log-based body-fat estimator over the waist
// measurement and the fixed neck and height constants, all converted to
// inches. Returns NaN when the log argument is non-positive; callers treat
// that as "metric unavailable for this date".
func BodyFatPct(waistCm float64) float64 {
	waistIn := waistCm / cmPerIn
	neckIn := neckCm / cmPerIn
	heightIn := heightCm / cmPerIn

	if waistIn-neckIn <= 0 {
		return math.NaN()
	}

	fat := 86.010*math.Log10(waistIn-neckIn) - 70.041*math.Log10(heightIn) + 36.76
	return math.Round(fat*10) / 10
}

// ApplyBodyFat fills BodyFatPct on each record that has a waist measurement.
// A domain violation leaves the field nil; the record is still persisted.
func ApplyBodyFat(records []*models.BodyMeasurementRecord) {
	for _, record := range records {
		if record.WaistCm == nil {
			continue
		}
		fat := BodyFatPct(*record.WaistCm)
		if math.IsNaN(fat) {
			continue
		}
		record.BodyFatPct = &fat
	}
}

// EMA computes the exponential moving average over an ordered-by-date value
// sequence with alpha = 2/(span+1).
//
// Reset rule: a value of exactly 0 or NaN marks a data gap. The EMA for that
// position is NaN, and the next valid value restarts the average from itself
// rather than smoothing against the last value before the gap. A logged zero
// day is a missed diary, not a zero-calorie day; the discontinuity this
// creates in the rendered series is intentional.
func EMA(values []float64, span int) []float64 {
	alpha := 2.0 / (float64(span) + 1.0)
	result := make([]float64, len(values))
	ema := math.NaN()

	for i, value := range values {
		if math.IsNaN(value) || value == 0 {
			ema = math.NaN()
		} else if math.IsNaN(ema) {
			ema = value
		} else {
			ema = ema + alpha*(value-ema)
		}
		result[i] = ema
	}

	return result
}

// LinearTrend fits y = slope*x + intercept by least squares. NaN values are
// excluded from the fit. Returns NaN coefficients when fewer than two valid
// points exist.
func LinearTrend(xs, ys []float64) (slope, intercept float64) {
	var n, sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		if math.IsNaN(ys[i]) || math.IsNaN(xs[i]) {
			continue
		}
		n++
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	if n < 2 {
		return math.NaN(), math.NaN()
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return math.NaN(), math.NaN()
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
