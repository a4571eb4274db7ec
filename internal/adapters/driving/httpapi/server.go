// Package httpapi exposes the scout services over a JSON HTTP API.
// It is a thin driving adapter: requests are decoded, handed to the
// core services and the results written back as JSON. All routing
// lives under /api with a /healthz liveness probe alongside.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/talentbase-labs/scout-cli/internal/logger"
)

// Server serves the scout HTTP API.
type Server struct {
	ports  *Ports
	router chi.Router
}

// NewServer creates an HTTP API server with the given ports.
// Returns an error if required ports are missing.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := &Server{ports: ports}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Get("/candidates/{id}", s.handleCandidate)
		r.Get("/searches", s.handleSearches)
		r.Delete("/searches/{id}", s.handleDeleteSearch)
		r.Get("/saved", s.handleSaved)
		r.Post("/saved/{id}", s.handleSave)
		r.Delete("/saved/{id}", s.handleUnsave)
		r.Get("/suggestions", s.handleSuggestions)
		r.Get("/analytics", s.handleAnalytics)
	})

	return r
}

// ListenAndServe runs the server on addr until ctx is cancelled.
// Shutdown drains in-flight requests for up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("HTTP API listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs one line per request with status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		l := logger.L()
		l.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
