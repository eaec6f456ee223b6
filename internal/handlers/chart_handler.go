package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/services/charts"
)

// ChartHandler serves the rendered chart HTML files.
type ChartHandler struct {
	chartService *charts.Service
	logger       arbor.ILogger
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(chartService *charts.Service, logger arbor.ILogger) *ChartHandler {
	return &ChartHandler{
		chartService: chartService,
		logger:       logger,
	}
}

// ServeChartHandler handles GET /chart/{kind} where kind is "calories" or
// "massfat". Charts are rendered by the refresh run, not on demand; a chart
// that has never been rendered yields 404.
func (h *ChartHandler) ServeChartHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	kind := strings.TrimPrefix(r.URL.Path, "/chart/")
	var path string
	switch kind {
	case "calories":
		path = h.chartService.CalorieHTMLPath()
	case "massfat":
		path = h.chartService.MassFatHTMLPath()
	default:
		WriteError(w, http.StatusBadRequest, "Unknown chart: "+kind)
		return
	}

	if _, err := os.Stat(path); err != nil {
		http.Error(w, "Chart not found. Please refresh data first.", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, path)
}
