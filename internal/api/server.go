package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"migraph/internal/engine"
	"migraph/internal/logging"
	"migraph/internal/storage"
)

// Server represents the HTTP API server
type Server struct {
	router *http.ServeMux
	server *http.Server
	addr   string
	logger *logging.Logger
	store  *storage.Store
	engine *engine.Engine

	authRequired bool
	projectRoot  string
}

// Options holds optional server behavior.
type Options struct {
	// AuthRequired gates every non-health endpoint behind bearer tokens
	AuthRequired bool
	// ProjectRoot locates .migraph/plan.toml for the plan endpoint
	ProjectRoot string
}

// NewServer creates a new HTTP server instance
func NewServer(addr string, eng *engine.Engine, store *storage.Store, logger *logging.Logger, opts Options) *Server {
	projectRoot := opts.ProjectRoot
	if projectRoot == "" {
		projectRoot = "."
	}
	s := &Server{
		addr:         addr,
		logger:       logger,
		store:        store,
		engine:       eng,
		router:       http.NewServeMux(),
		authRequired: opts.AuthRequired,
		projectRoot:  projectRoot,
	}

	// Register routes
	s.registerRoutes()

	// Create HTTP server with configured router and middleware
	handler := s.applyMiddleware(s.router)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.addr,
	})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", nil)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully", nil)
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last one wraps first)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	if s.authRequired {
		handler = AuthMiddleware(s.store)(handler)
	}
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	return handler
}
