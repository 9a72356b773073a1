// Package core provides the API chassis for the skycast service. It owns the
// chi router and enforces cross-cutting concerns -- request identification,
// structured request logging, panic recovery, and the JSON response
// envelope -- before requests reach domain handlers.
package core

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skycast/internal/config"
)

// Server encapsulates the router and its cross-cutting dependencies,
// allowing injection during testing.
type Server struct {
	Config *config.Config
	Logger *slog.Logger

	router *chi.Mux
}

// RouteRegistrar mounts a group of routes onto a router.
type RouteRegistrar func(r chi.Router)

// NewServer builds the middleware chain and the health endpoint, then mounts
// the given registrars under /v1.
func NewServer(cfg *config.Config, logger *slog.Logger, registrars ...RouteRegistrar) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	s := &Server{
		Config: cfg,
		Logger: logger,
		router: chi.NewRouter(),
	}

	// Recoverer must be outermost so panics anywhere in the chain are caught.
	s.router.Use(s.Recoverer)
	s.router.Use(RequestID)
	s.router.Use(RequestLogger(logger))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		for _, register := range registrars {
			register(r)
		}
	})

	return s, nil
}

// Handler returns the http.Handler for the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleHealth reports liveness. It deliberately performs no upstream call:
// the provider being down must not make the service unhealthy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "skycast",
	})
}
