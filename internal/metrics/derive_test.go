package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/vitalog/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestNetCalories(t *testing.T) {
	record := &models.CalorieRecord{
		CategoryTotals: map[string]float64{"Breakfast": 400, "Lunch": 600},
		ExerciseKcal:   floatPtr(200),
	}
	assert.Equal(t, 800.0, NetCalories(record))
}

func TestNetCalories_NoExercise(t *testing.T) {
	record := &models.CalorieRecord{
		CategoryTotals: map[string]float64{"Dinner": 750, "Snacks": 120},
	}
	assert.Equal(t, 870.0, NetCalories(record))
}

func TestNetCalories_IgnoresUnknownCategories(t *testing.T) {
	record := &models.CalorieRecord{
		CategoryTotals: map[string]float64{"Lunch": 500, "Supplements": 99},
	}
	assert.Equal(t, 500.0, NetCalories(record))
}

func TestNetCalories_AllCategories(t *testing.T) {
	record := &models.CalorieRecord{
		CategoryTotals: map[string]float64{
			"Breakfast": 300, "Lunch": 500, "Dinner": 700, "Snacks": 150, "Drinks": 100,
		},
		ExerciseKcal: floatPtr(250),
	}
	assert.Equal(t, 1500.0, NetCalories(record))
}

func TestBodyFatPct(t *testing.T) {
	// waist 90cm, neck 41.5cm, height 178cm
	assert.Equal(t, 17.7, BodyFatPct(90.0))
}

func TestBodyFatPct_DomainViolation(t *testing.T) {
	// Waist at or below the neck constant makes the log argument
	// non-positive.
	assert.True(t, math.IsNaN(BodyFatPct(41.5)))
	assert.True(t, math.IsNaN(BodyFatPct(30.0)))
}

func TestBodyFatPct_RoundedToOneDecimal(t *testing.T) {
	fat := BodyFatPct(95.5)
	assert.Equal(t, math.Round(fat*10)/10, fat)
}

func TestApplyBodyFat(t *testing.T) {
	records := []*models.BodyMeasurementRecord{
		{Date: "2025-03-03", WaistCm: floatPtr(90.0)},
		{Date: "2025-03-04"},                           // no waist measurement
		{Date: "2025-03-05", WaistCm: floatPtr(30.0)},  // domain violation
	}

	ApplyBodyFat(records)

	require.NotNil(t, records[0].BodyFatPct)
	assert.Equal(t, 17.7, *records[0].BodyFatPct)
	assert.Nil(t, records[1].BodyFatPct)
	assert.Nil(t, records[2].BodyFatPct)
}

func TestEMA_Smoothing(t *testing.T) {
	result := EMA([]float64{800, 900}, 7)
	require.Len(t, result, 2)
	assert.Equal(t, 800.0, result[0])
	// alpha = 2/8 = 0.25; 800 + 0.25*(900-800) = 825
	assert.InDelta(t, 825.0, result[1], 1e-9)
}

func TestEMA_ZeroResetsAverage(t *testing.T) {
	result := EMA([]float64{800, 0, 900}, 7)
	require.Len(t, result, 3)
	assert.Equal(t, 800.0, result[0])
	assert.True(t, math.IsNaN(result[1]))
	// The value after the gap restarts from itself, not from 800.
	assert.Equal(t, 900.0, result[2])
}

func TestEMA_NaNResetsAverage(t *testing.T) {
	result := EMA([]float64{800, math.NaN(), 900, 1000}, 7)
	assert.True(t, math.IsNaN(result[1]))
	assert.Equal(t, 900.0, result[2])
	assert.InDelta(t, 925.0, result[3], 1e-9)
}

func TestEMA_Empty(t *testing.T) {
	assert.Empty(t, EMA(nil, 7))
}

func TestLinearTrend(t *testing.T) {
	slope, intercept := LinearTrend([]float64{0, 1, 2, 3}, []float64{1, 3, 5, 7})
	assert.InDelta(t, 2.0, slope, 1e-9)
	assert.InDelta(t, 1.0, intercept, 1e-9)
}

func TestLinearTrend_ExcludesNaN(t *testing.T) {
	slope, intercept := LinearTrend(
		[]float64{0, 1, 2, 3},
		[]float64{1, math.NaN(), 5, 7},
	)
	assert.InDelta(t, 2.0, slope, 1e-9)
	assert.InDelta(t, 1.0, intercept, 1e-9)
}

func TestLinearTrend_TooFewPoints(t *testing.T) {
	slope, intercept := LinearTrend([]float64{1}, []float64{2})
	assert.True(t, math.IsNaN(slope))
	assert.True(t, math.IsNaN(intercept))
}
