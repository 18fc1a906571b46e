// Package ui exposes the sweep service over HTTP. It is a caller of
// the core: it supplies grids and alpha, and serves the resulting
// power tables as JSON for external visualization.
package ui

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"unipower/app"
	"unipower/domain/core"
	"unipower/internal"
	"unipower/internal/config"
)

// Server wraps the power sweep service with an HTTP API
type Server struct {
	router *chi.Mux
	svc    *app.PowerSweepService
	cfg    *config.Config
	logger *internal.Logger

	mu      sync.RWMutex
	results map[core.SweepID]*app.SweepResult
}

// NewServer creates the HTTP server around a sweep service
func NewServer(svc *app.PowerSweepService, cfg *config.Config, logger *internal.Logger) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		svc:     svc,
		cfg:     cfg,
		logger:  logger,
		results: make(map[core.SweepID]*app.SweepResult),
	}
	s.router.Use(middleware.Recoverer)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/api/sweeps", s.handleRunSweep)
	s.router.Get("/api/sweeps/{id}", s.handleGetSweep)
}

// ServeHTTP makes Server a http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the server on the configured port
func (s *Server) ListenAndServe() error {
	addr := ":" + s.cfg.Server.Port
	s.logger.Info("listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRunSweep runs one of the configured sweeps, selected by the
// "grid" query parameter (small, large, analytic).
func (s *Server) handleRunSweep(w http.ResponseWriter, r *http.Request) {
	grid := r.URL.Query().Get("grid")
	if grid == "" {
		grid = "small"
	}

	var (
		result *app.SweepResult
		err    error
	)
	sim := s.cfg.Simulation
	switch grid {
	case "small", "large":
		gc := s.cfg.Sweeps.Small
		if grid == "large" {
			gc = s.cfg.Sweeps.Large
		}
		result, err = s.svc.RunSweep(r.Context(), app.SweepRequest{
			Label:        grid,
			SampleSizes:  gc.SampleSizes,
			Bins:         gc.Bins,
			PercentError: sim.PercentError,
			Reps:         sim.Reps,
			Alpha:        sim.Alpha,
			Seed:         sim.Seed,
		})
	case "analytic":
		result, err = s.svc.RunAnalyticSweep(r.Context(), app.AnalyticSweepRequest{
			Label:       grid,
			SampleSizes: s.cfg.Sweeps.Analytic.SampleSizes,
			Bins:        s.cfg.Sweeps.Analytic.Bins,
			Alpha:       sim.Alpha,
		})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown grid " + grid})
		return
	}
	if err != nil {
		s.logger.Error("sweep %s failed: %v", grid, err)
		status := http.StatusInternalServerError
		if core.IsInvalidParameter(err) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.results[result.SweepID] = result
	s.mu.Unlock()

	s.logger.Info("sweep %s finished: %d rows in %dms", grid, len(result.Table.Rows), result.RuntimeMs)
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleGetSweep(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.RLock()
	result, ok := s.results[id]
	s.mu.RUnlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": core.ErrSweepNotFound.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
