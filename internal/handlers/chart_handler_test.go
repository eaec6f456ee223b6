package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/services/charts"
)

func newChartHandler(t *testing.T) (*ChartHandler, string) {
	t.Helper()

	outputDir := t.TempDir()
	service := charts.NewService(&common.ChartsConfig{
		OutputDir:   outputDir,
		CalorieFile: "kcal_plot",
		MassFatFile: "mass_fat_plot",
	}, nil, arbor.NewLogger())

	return NewChartHandler(service, arbor.NewLogger()), outputDir
}

func TestServeChartHandler_ServesRenderedChart(t *testing.T) {
	handler, outputDir := newChartHandler(t)

	chartHTML := "<html><body>calorie chart</body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(outputDir, "kcal_plot.html"), []byte(chartHTML), 0644))

	req := httptest.NewRequest(http.MethodGet, "/chart/calories", nil)
	rec := httptest.NewRecorder()
	handler.ServeChartHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "calorie chart")
}

func TestServeChartHandler_NotRenderedYet(t *testing.T) {
	handler, _ := newChartHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/chart/massfat", nil)
	rec := httptest.NewRecorder()
	handler.ServeChartHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chart not found. Please refresh data first.")
}

func TestServeChartHandler_UnknownKind(t *testing.T) {
	handler, _ := newChartHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/chart/bogus", nil)
	rec := httptest.NewRecorder()
	handler.ServeChartHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeChartHandler_MethodNotAllowed(t *testing.T) {
	handler, _ := newChartHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/chart/calories", nil)
	rec := httptest.NewRecorder()
	handler.ServeChartHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
