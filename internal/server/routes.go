package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI page (HTML template)
	mux.HandleFunc("/", s.handleRoot)

	// Rendered charts
	mux.HandleFunc("/chart/", s.app.ChartHandler.ServeChartHandler)

	// Refresh trigger (gated; 429 while a run is active)
	mux.HandleFunc("/refresh", s.app.RefreshHandler.RefreshHandler)

	// API routes - System
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	return mux
}

// handleRoot serves the index page and turns everything else into a JSON 404.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}
	s.app.PageHandler.ServePage("index.html", "home")(w, r)
}
