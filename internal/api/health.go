package api

import (
	"net/http"
	"time"

	"migraph/internal/version"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// ReadyResponse represents the readiness check response
type ReadyResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Store     bool      `json:"store"`
	Detail    string    `json:"detail,omitempty"`
}

// handleHealth reports process liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}

	WriteJSON(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
	}, http.StatusOK)
}

// handleReady reports whether the run store is reachable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowed(w)
		return
	}

	resp := ReadyResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC(),
		Store:     true,
	}
	status := http.StatusOK

	if err := s.store.Ping(); err != nil {
		resp.Status = "not-ready"
		resp.Store = false
		resp.Detail = err.Error()
		status = http.StatusServiceUnavailable
	}

	WriteJSON(w, resp, status)
}
