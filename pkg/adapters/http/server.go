// Package http exposes a Guide over HTTP for browser front-ends. The browser
// side plays the adapters: it polls or streams the bridge state, performs
// the requested navigation, reports which targets are on screen and answers
// confirmation prompts.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/readiness"
	"github.com/aretw0/waypoint/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// cancelWait bounds how long a cancel request waits for the tour to end
	// or for its confirmation to be asked.
	cancelWait      = 30 * time.Second
	pendingInterval = 5 * time.Millisecond
)

// Guide is the part of the engine the server drives.
type Guide interface {
	Start(ctx context.Context, tourID string) error
	Advance(ctx context.Context) error
	Retreat(ctx context.Context) error
	RequestCancel(ctx context.Context) error
	Session() domain.Session
	Tours() []string
	Inspect(tourID string) (schema.TourSpec, error)
	Graph(tourID string) (string, error)
}

// Bridge is the adapter state shared with the browser.
type Bridge interface {
	Snapshot() memory.State
	Answer(accept bool) error
	SetPresent(targets ...domain.Locator)
}

// Server serves the tour API.
type Server struct {
	Guide   Guide
	Bridge  Bridge
	Streams *StreamManager

	version  string
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithStreams shares a stream manager whose Hooks were given to the Guide.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetrics serves the gatherer on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// SessionResponse is returned by every /session endpoint.
type SessionResponse struct {
	Session domain.Session `json:"session"`
	Bridge  memory.State   `json:"bridge"`
}

// TourSummary is an entry of GET /tours.
type TourSummary struct {
	ID    string `json:"id"`
	Steps int    `json:"steps"`
}

// NewHandler creates a new HTTP handler for the guide.
func NewHandler(guide Guide, bridge Bridge, opts ...Option) http.Handler {
	s := &Server{
		Guide:   guide,
		Bridge:  bridge,
		version: "unknown",
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.logger)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/tours", s.ListTours)
	r.Get("/tours/{id}", s.GetTour)
	r.Get("/tours/{id}/graph", s.GetGraph)
	r.Get("/events", s.SubscribeEvents)

	r.Route("/session", func(r chi.Router) {
		r.Get("/", s.GetSession)
		r.Post("/", s.StartTour)
		r.Post("/advance", s.Advance)
		r.Post("/retreat", s.Retreat)
		r.Post("/cancel", s.Cancel)
		r.Post("/confirm", s.Confirm)
		r.Put("/targets", s.PutTargets)
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "waypoint-http",
		"version": s.version,
	})
}

// ListTours handles the GET /tours request.
func (s *Server) ListTours(w http.ResponseWriter, r *http.Request) {
	ids := s.Guide.Tours()
	out := make([]TourSummary, 0, len(ids))
	for _, id := range ids {
		spec, err := s.Guide.Inspect(id)
		if err != nil {
			s.logger.Warn("ListTours: inspect failed", "tour", id, "error", err)
			continue
		}
		out = append(out, TourSummary{ID: id, Steps: len(spec.Steps)})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetTour handles the GET /tours/{id} request.
func (s *Server) GetTour(w http.ResponseWriter, r *http.Request) {
	spec, err := s.Guide.Inspect(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, spec)
}

// GetGraph handles the GET /tours/{id}/graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	out, err := s.Guide.Graph(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, out)
}

// GetSession handles the GET /session request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	s.writeSession(w, http.StatusOK)
}

// StartTour handles the POST /session request.
func (s *Server) StartTour(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TourID string `json:"tour_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TourID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("StartTour: Invalid request body", "error", err)
		return
	}
	if err := s.Guide.Start(r.Context(), body.TourID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeSession(w, http.StatusCreated)
}

// Advance handles the POST /session/advance request.
func (s *Server) Advance(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.Guide.Advance)
}

// Retreat handles the POST /session/retreat request.
func (s *Server) Retreat(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.Guide.Retreat)
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context) error) {
	if err := fn(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeSession(w, http.StatusOK)
}

// Cancel handles the POST /session/cancel request.
//
// When the guide asks for confirmation the request answers 202 Accepted as
// soon as the question is pending; the browser answers it through
// POST /session/confirm. Otherwise the result is returned directly.
func (s *Server) Cancel(w http.ResponseWriter, r *http.Request) {
	if s.pending(r.Context()) {
		s.writeError(w, domain.ErrTransitionInFlight)
		return
	}

	// The cancellation outlives this request while the question is open.
	pending, err := readiness.RunUntil(r.Context(), s.Guide.RequestCancel, s.pending, cancelWait, pendingInterval)
	switch {
	case r.Context().Err() != nil:
		return
	case err != nil:
		s.writeError(w, err)
	case pending:
		s.writeSession(w, http.StatusAccepted)
	default:
		s.writeSession(w, http.StatusOK)
	}
}

func (s *Server) pending(context.Context) bool {
	return s.Bridge.Snapshot().Pending != ""
}

// Confirm handles the POST /session/confirm request.
func (s *Server) Confirm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Accept bool `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Confirm: Invalid request body", "error", err)
		return
	}
	if err := s.Bridge.Answer(body.Accept); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeSession(w, http.StatusOK)
}

// PutTargets handles the PUT /session/targets request. The browser reports
// the locators currently present on screen.
func (s *Server) PutTargets(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Present []domain.Locator `json:"present"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PutTargets: Invalid request body", "error", err)
		return
	}
	s.Bridge.SetPresent(body.Present...)
	s.writeSession(w, http.StatusOK)
}

// -- Helpers --

func (s *Server) writeSession(w http.ResponseWriter, status int) {
	s.writeJSON(w, status, SessionResponse{
		Session: s.Guide.Session(),
		Bridge:  s.Bridge.Snapshot(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTourNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTourActive),
		errors.Is(err, domain.ErrTransitionInFlight),
		errors.Is(err, domain.ErrNoActiveTour),
		errors.Is(err, memory.ErrNoPendingConfirmation):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
