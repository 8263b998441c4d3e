package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/cadence/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes a running (or finished) run over HTTP. Every source is
// optional; routes whose source is missing answer 404.
type Server struct {
	State    ports.StateSource
	History  ports.HistoryStore
	Gatherer prometheus.Gatherer
	Version  string
	Logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithState serves snapshots from src on GET /state.
func WithState(src ports.StateSource) Option {
	return func(s *Server) { s.State = src }
}

// WithHistory serves GET /runs and GET /runs/{runID}/history from store.
func WithHistory(store ports.HistoryStore) Option {
	return func(s *Server) { s.History = store }
}

// WithGatherer serves GET /metrics in the Prometheus exposition format.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.Gatherer = g }
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) { s.Version = v }
}

// WithLogger configures the logger used for encoding failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.Logger = l }
}

// NewHandler creates the HTTP handler.
func NewHandler(opts ...Option) http.Handler {
	server := &Server{Logger: slog.Default()}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/state", server.GetState)
	r.Get("/runs", server.ListRuns)
	r.Get("/runs/{runID}/history", server.GetHistory)
	if server.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.Logger.Error("failed to encode response", "error", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// GetHealth reports liveness.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo reports build information.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"name": "cadence", "version": s.Version})
}

// GetState returns the latest snapshot of the run.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	if s.State == nil {
		s.writeError(w, http.StatusNotFound, "no state source configured")
		return
	}
	s.writeJSON(w, http.StatusOK, s.State.Snapshot())
}

// ListRuns returns the run IDs known to the history store.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		s.writeError(w, http.StatusNotFound, "no history store configured")
		return
	}
	runs, err := s.History.Runs(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []string{}
	}
	s.writeJSON(w, http.StatusOK, runs)
}

// GetHistory returns the metric records of one run.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		s.writeError(w, http.StatusNotFound, "no history store configured")
		return
	}
	runID := chi.URLParam(r, "runID")
	records, err := s.History.Query(r.Context(), runID)
	switch {
	case errors.Is(err, ports.ErrRunNotFound):
		s.writeError(w, http.StatusNotFound, "run not found: "+runID)
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	default:
		s.writeJSON(w, http.StatusOK, records)
	}
}
