package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/services/ingest"
)

// RefreshHandler triggers ingestion runs over HTTP.
type RefreshHandler struct {
	ingestService *ingest.Service
	logger        arbor.ILogger
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(ingestService *ingest.Service, logger arbor.ILogger) *RefreshHandler {
	return &RefreshHandler{
		ingestService: ingestService,
		logger:        logger,
	}
}

// RefreshHandler handles POST /refresh. A second trigger while a run is
// active gets 429 immediately; triggers are never queued.
func (h *RefreshHandler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if err := h.ingestService.TriggerAsync(); err != nil {
		if errors.Is(err, ingest.ErrRunInProgress) {
			WriteJSON(w, http.StatusTooManyRequests, map[string]string{
				"status":  "in_progress",
				"message": "A refresh is already running. Try again when it finishes.",
			})
			return
		}
		h.logger.Error().Err(err).Msg("Failed to start refresh")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info().Msg("Refresh triggered via API")
	WriteStarted(w, "Refresh started")
}
