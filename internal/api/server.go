// Package api exposes the minimal HTTP control/status surface: start/stop
// a run, fetch current tallies, expose /metrics (Prometheus) and
// /healthz, plus a websocket hub streaming per-step counters to a
// connected dashboard.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/Kylepayen02/ABM-COVID/internal/orchestrator"
	"github.com/Kylepayen02/ABM-COVID/internal/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RunController is the subset of run-management behavior the HTTP surface
// needs, satisfied by cmd/simserver's run manager.
type RunController interface {
	Start(params map[string]float64) (runID string, err error)
	Stop(runID string) error
	Tallies(runID string) (orchestrator.Tallies, bool)
}

// Server wraps a chi.Mux exposing the control/status/metrics endpoints.
type Server struct {
	router *chi.Mux
	ctrl   RunController
	hub    *Hub
	log    telemetry.Logger
}

// NewServer builds a Server around a RunController and websocket Hub.
func NewServer(ctrl RunController, hub *Hub, log telemetry.Logger) *Server {
	s := &Server{router: chi.NewRouter(), ctrl: ctrl, hub: hub, log: log}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Get("/ws", s.handleWS)

	s.router.Route("/runs", func(r chi.Router) {
		r.Post("/", s.handleStartRun)
		r.Post("/{runID}/stop", s.handleStopRun)
		r.Get("/{runID}/tallies", s.handleTallies)
	})
}

// ServeHTTP implements http.Handler, letting cmd/simserver use the Server
// directly as an http.Server's Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	var params map[string]float64
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	runID, err := s.ctrl.Start(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"run_id": runID})
}

func (s *Server) handleStopRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	if err := s.ctrl.Stop(runID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTallies(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	t, ok := s.ctrl.Tallies(runID)
	if !ok {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	writeJSON(w, t)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
