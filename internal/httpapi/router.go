// Package httpapi wires the HTTP surface of the bookkeeping service.
// It keeps handlers thin, delegating the accounting rules to the book
// service.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nlazarte/libromayor/internal/service/book"
)

// ReadyChecker is optionally implemented by stores to indicate readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

// Server wires handlers and middleware using Chi.
type Server struct {
	svc   *book.Service
	ready ReadyChecker
	log   *slog.Logger
	rt    *chi.Mux
}

// New constructs the HTTP server with routes and middleware. ready may be
// nil when the backend has no meaningful readiness probe.
func New(svc *book.Service, ready ReadyChecker, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{svc: svc, ready: ready, log: logger, rt: r}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	// Entries
	s.rt.Post("/v1/entries", s.postEntry)
	s.rt.Get("/v1/entries", s.listEntries)
	s.rt.Get("/v1/entries/export", s.exportMonth)
	s.rt.Get("/v1/entries/{id}", s.getEntry)
	s.rt.Put("/v1/entries/{id}", s.putEntry)
	s.rt.Delete("/v1/entries/{id}", s.deleteEntry)
	// Balances
	s.rt.Get("/v1/balances", s.getBalances)
	// Loan quoting (quote first, confirm via POST /v1/entries)
	s.rt.Post("/v1/loans/quote", s.quoteLoan)
	// Health and metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Handle("/metrics", metricsHandler())
}
