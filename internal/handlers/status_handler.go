package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/interfaces"
	"github.com/ternarybob/vitalog/internal/services/ingest"
)

// StatusHandler reports the run state and data counts.
type StatusHandler struct {
	ingestService *ingest.Service
	storage       interfaces.StorageManager
	logger        arbor.ILogger
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(ingestService *ingest.Service, storage interfaces.StorageManager, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		ingestService: ingestService,
		storage:       storage,
		logger:        logger,
	}
}

// GetStatusHandler handles GET /api/status
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	runStatus := h.ingestService.Status()

	response := map[string]interface{}{
		"refreshing": runStatus.Refreshing,
	}
	if runStatus.LastRun != nil {
		response["last_run"] = runStatus.LastRun
	}
	if runStatus.LastError != "" {
		response["last_error"] = runStatus.LastError
	}

	if count, err := h.storage.CalorieStorage().Count(); err == nil {
		response["calorie_records"] = count
	}
	if count, err := h.storage.MeasurementStorage().Count(); err == nil {
		response["measurement_records"] = count
	}

	WriteJSON(w, http.StatusOK, response)
}
