package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func newTestChartService(t *testing.T) *Service {
	t.Helper()
	return NewService(&common.ChartsConfig{
		OutputDir:   t.TempDir(),
		CalorieFile: "kcal_plot",
		MassFatFile: "mass_fat_plot",
		TargetKcal:  1500,
		EMASpan:     7,
	}, nil, arbor.NewLogger())
}

func TestRenderCalorieChart(t *testing.T) {
	service := newTestChartService(t)

	records := []*models.CalorieRecord{
		{
			Date:           "2025-03-03",
			CategoryTotals: map[string]float64{"Breakfast": 400, "Lunch": 600},
			ExerciseKcal:   floatPtr(200),
			NetKcal:        800,
		},
		{
			Date:           "2025-03-04",
			CategoryTotals: map[string]float64{"Dinner": 900},
			NetKcal:        900,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, service.renderCalorieChart(records, &buf))

	html := buf.String()
	assert.Contains(t, html, "2025-03-03")
	assert.Contains(t, html, "Breakfast")
	assert.Contains(t, html, "Exercise")
	assert.Contains(t, html, "EMA")
}

func TestRenderCalorieChart_Empty(t *testing.T) {
	service := newTestChartService(t)

	var buf bytes.Buffer
	require.NoError(t, service.renderCalorieChart(nil, &buf))
	assert.NotZero(t, buf.Len())
}

func TestRenderMassFatChart(t *testing.T) {
	service := newTestChartService(t)

	records := []*models.BodyMeasurementRecord{
		{Date: "2025-03-03", MassKg: floatPtr(82.5), WaistCm: floatPtr(90.0), BodyFatPct: floatPtr(17.7)},
		{Date: "2025-03-04", MassKg: floatPtr(82.1)},
		{Date: "2025-03-05", WaistCm: floatPtr(89.5), BodyFatPct: floatPtr(17.5)},
	}

	var buf bytes.Buffer
	require.NoError(t, service.renderMassFatChart(records, &buf))

	html := buf.String()
	assert.Contains(t, html, "2025-03-03")
	assert.Contains(t, html, "Mass")
	assert.Contains(t, html, "Body Fat")
}

func TestChartPaths(t *testing.T) {
	service := newTestChartService(t)

	assert.Contains(t, service.CalorieHTMLPath(), "kcal_plot.html")
	assert.Contains(t, service.CaloriePNGPath(), "kcal_plot.png")
	assert.Contains(t, service.MassFatHTMLPath(), "mass_fat_plot.html")
	assert.Contains(t, service.MassFatPNGPath(), "mass_fat_plot.png")
}
