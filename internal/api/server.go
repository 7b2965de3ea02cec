// Package api exposes the checker over HTTP: async check jobs with status
// polling, a synchronous endpoint for small corpora, and per-document
// outlines.
package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/doclint/internal/config"
	"github.com/dgallion1/doclint/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for doclint.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/check", s.handleCheck)
		r.Post("/api/check/sync", s.handleCheckSync)
		r.Get("/api/check/{jobID}/status", s.handleCheckStatus)
		r.Get("/api/check/{jobID}/report", s.handleCheckReport)
		r.Get("/api/check/{jobID}/documents", s.handleListDocuments)
		r.Get("/api/check/{jobID}/outline/*", s.handleOutline)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
