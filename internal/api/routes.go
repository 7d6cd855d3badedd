package api

import (
	"net/http"

	"migraph/internal/version"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Health and readiness checks
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/ready", s.handleReady)

	// System status
	s.router.HandleFunc("/status", s.handleStatus)

	// Pipeline execution
	s.router.HandleFunc("/analyze", s.handleAnalyze) // POST

	// Run inspection
	s.router.HandleFunc("/runs", s.handleListRuns) // GET
	s.router.HandleFunc("/runs/", s.handleRunRoutes)
	// GET /runs/:id
	// GET /runs/:id/graph
	// GET /runs/:id/metrics
	// GET /runs/:id/analysis
	// GET /runs/:id/analysis/:nodeId
	// GET /runs/:id/plan

	// Root endpoint
	s.router.HandleFunc("/", s.handleRoot)
}

// handleRoot handles requests to the root path
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"service": "migraph",
		"version": version.Version,
		"endpoints": []string{
			"/health", "/ready", "/status", "/analyze",
			"/runs", "/runs/{id}", "/runs/{id}/graph", "/runs/{id}/metrics",
			"/runs/{id}/analysis", "/runs/{id}/analysis/{nodeId}", "/runs/{id}/plan",
		},
	}, http.StatusOK)
}
