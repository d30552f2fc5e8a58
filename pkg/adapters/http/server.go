// Package http exposes a machine over a JSON API.
//
//	GET    /health               liveness
//	GET    /machine              designated states and transition counts
//	POST   /validate             reversibility verdict
//	POST   /run                  full-string run, forward or backward
//	GET    /graph                Mermaid diagram (?direction=f|b)
//	GET    /sessions             session ids
//	POST   /sessions             start a stepping session
//	GET    /sessions/{id}        session snapshot
//	POST   /sessions/{id}/step   apply one transition
//	DELETE /sessions/{id}        drop a session
//	GET    /metrics              Prometheus exposition, when enabled
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/rpda/internal/logging"
	"github.com/aretw0/rpda/internal/observability"
	"github.com/aretw0/rpda/internal/presentation/graph"
	"github.com/aretw0/rpda/pkg/domain"
	"github.com/aretw0/rpda/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines what the API needs from a loaded machine.
type Engine interface {
	Definition() *domain.Machine
	Validate() error
	Run(ctx context.Context, input string) (domain.Result, error)
	RunBackward(ctx context.Context, input string) (domain.Result, error)
}

// Server holds the handler dependencies.
type Server struct {
	Engine   Engine
	Sessions *session.Manager

	metrics  *observability.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records validations into m and serves g on /metrics.
func WithMetrics(m *observability.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Engine:   engine,
		Sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/machine", s.GetMachine)
	r.Post("/validate", s.Validate)
	r.Post("/run", s.Run)
	r.Get("/graph", s.GetGraph)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Get("/{id}", s.GetSession)
		r.Delete("/{id}", s.DeleteSession)
		r.Post("/{id}/step", s.Step)
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RunRequest is the body of POST /run.
type RunRequest struct {
	Input     string `json:"input"`
	Direction string `json:"direction,omitempty"`
}

// StepRequest is the body of POST /sessions/{id}/step.
// An empty input or "ep" requests an epsilon step.
type StepRequest struct {
	Input     string `json:"input"`
	Direction string `json:"direction,omitempty"`
}

// ValidateResponse is the body returned by POST /validate.
type ValidateResponse struct {
	Reversible bool                   `json:"reversible"`
	Violation  *domain.ValidationError `json:"violation,omitempty"`
	Message    string                 `json:"message"`
}

// MachineResponse is the body returned by GET /machine.
type MachineResponse struct {
	Initial       string   `json:"initial"`
	Final         []string `json:"final"`
	Reject        []string `json:"reject"`
	LenientReject bool     `json:"lenient_reject"`
	StepLimit     int      `json:"step_limit"`
	States        []string `json:"states"`
	Transitions   int      `json:"transitions"`
}

// SessionResponse describes a stepping session.
type SessionResponse struct {
	ID       string           `json:"id"`
	Snapshot *domain.Snapshot `json:"snapshot"`
	Status   session.Status   `json:"status"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetMachine handles GET /machine.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	m := s.Engine.Definition()
	s.writeJSON(w, http.StatusOK, MachineResponse{
		Initial:       m.Initial,
		Final:         m.Final,
		Reject:        m.Reject,
		LenientReject: m.LenientReject,
		StepLimit:     m.StepLimit,
		States:        m.Table.States(),
		Transitions:   m.Table.Len(),
	})
}

// Validate handles POST /validate. A non-reversible machine is a 200 with
// reversible=false; the violation describes the first failed check.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	err := s.Engine.Validate()
	if s.metrics != nil {
		s.metrics.ObserveValidation(err)
	}

	resp := ValidateResponse{Reversible: err == nil, Message: "The machine is reversible."}
	if err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			s.fail(w, "Validate failed", http.StatusInternalServerError, err)
			return
		}
		resp.Violation = verr
		resp.Message = verr.Error()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// Run handles POST /run.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	dir, err := parseDirection(body.Direction)
	if err != nil {
		s.fail(w, "Invalid direction", http.StatusBadRequest, err)
		return
	}

	run := s.Engine.Run
	if dir == domain.Backward {
		run = s.Engine.RunBackward
	}
	res, err := run(r.Context(), body.Input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrStepLimit) {
			status = http.StatusUnprocessableEntity
		}
		s.fail(w, "Run failed", status, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// GetGraph handles GET /graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var dirs []domain.Direction
	if q := r.URL.Query().Get("direction"); q != "" {
		dir, err := domain.ParseDirection(q)
		if err != nil {
			s.fail(w, "Invalid direction", http.StatusBadRequest, err)
			return
		}
		dirs = append(dirs, dir)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(s.Engine.Definition(), nil, dirs...))
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "List sessions failed", http.StatusInternalServerError, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// CreateSession handles POST /sessions. The session starts at the initial state.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	m := s.Engine.Definition()
	id := uuid.NewString()

	snap, err := s.Sessions.LoadOrStart(r.Context(), id, m.Initial)
	if err != nil {
		s.fail(w, "Create session failed", http.StatusInternalServerError, err)
		return
	}
	s.logger.Debug("session created", "session_id", id)
	s.writeJSON(w, http.StatusCreated, SessionResponse{
		ID:       id,
		Snapshot: snap,
		Status:   session.StatusOf(m, snap.State),
	})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SessionResponse{
		ID:       id,
		Snapshot: snap,
		Status:   session.StatusOf(s.Engine.Definition(), snap.State),
	})
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.sessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Step handles POST /sessions/{id}/step. A step with no matching transition
// is a 200 with ok=false and the unchanged snapshot.
func (s *Server) Step(w http.ResponseWriter, r *http.Request) {
	var body StepRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	dir, err := parseDirection(body.Direction)
	if err != nil {
		s.fail(w, "Invalid direction", http.StatusBadRequest, err)
		return
	}
	sym := domain.Epsilon
	if body.Input != "" {
		if sym, err = domain.ParseSymbol(body.Input); err != nil {
			s.fail(w, "Invalid input", http.StatusBadRequest, err)
			return
		}
	}

	out, err := s.Sessions.Step(r.Context(), chi.URLParam(r, "id"), s.Engine.Definition(), sym, dir)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) sessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	s.fail(w, "Session operation failed", http.StatusInternalServerError, err)
}

func (s *Server) fail(w http.ResponseWriter, msg string, status int, err error) {
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), status)
	if status >= http.StatusInternalServerError {
		s.logger.Error(msg, "err", err)
		return
	}
	s.logger.Warn(msg, "err", err, "status", status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func parseDirection(tag string) (domain.Direction, error) {
	if tag == "" {
		return domain.Forward, nil
	}
	return domain.ParseDirection(tag)
}
