// Package server exposes the classification engine and the learner's
// simulation state over a JSON HTTP API. The core packages stay pure;
// handlers only adapt JSON to core calls.
package server

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/aalp/internal/narrative"
	"github.com/abhisek/aalp/internal/simulation"
	"github.com/abhisek/aalp/internal/store"
)

// Server is the HTTP API over the practice engine.
type Server struct {
	router *chi.Mux
	events store.EventRepo
	sim    *simulation.Simulation

	// mu guards gen: the generator's rand source is not safe for
	// concurrent handlers.
	mu  sync.Mutex
	gen *narrative.Generator
}

// New creates a server over the given event log.
func New(events store.EventRepo, sim *simulation.Simulation, gen *narrative.Generator) *Server {
	s := &Server{
		router: chi.NewRouter(),
		events: events,
		sim:    sim,
		gen:    gen,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Get("/api/assertions", s.handleAssertions)
	s.router.Get("/api/classifications", s.handleClassifications)
	s.router.Post("/api/problems/new", s.handleNewProblem)
	s.router.Post("/api/classify", s.handleClassify)
	s.router.Get("/api/progress", s.handleProgress)
	s.router.Get("/api/balances", s.handleBalances)
}

// Handler returns the root HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

// currentLevel derives the learner's level from the unlock log.
func (s *Server) currentLevel(r *http.Request) (int, error) {
	maxUnlocked, err := s.events.MaxUnlockedLevel(r.Context())
	if err != nil {
		return 0, err
	}
	if maxUnlocked < 1 {
		return 1, nil
	}
	return maxUnlocked, nil
}
