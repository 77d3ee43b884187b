package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/tabulated"
	"github.com/go-chi/chi/v5"
)

// Server exposes a generated tabulated domain over HTTP so harnesses that only
// speak integer states can drive it.
type Server struct {
	Wrapper *tabulated.Wrapper
	Logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// DomainResponse describes the tabulated domain.
type DomainResponse struct {
	Name      string   `json:"name"`
	Class     string   `json:"class"`
	Attribute string   `json:"attribute"`
	Lower     int      `json:"lower"`
	Upper     int      `json:"upper"`
	NumStates int      `json:"num_states"`
	Actions   []string `json:"actions"`
}

// StateResponse carries a state id and its source-domain state.
type StateResponse struct {
	ID    int           `json:"id"`
	State *domain.State `json:"state"`
}

// ActionsResponse lists the actions applicable in a state.
type ActionsResponse struct {
	ID      int      `json:"id"`
	Actions []string `json:"actions"`
}

// TransitionsResponse lists the outcomes of an action in a state.
type TransitionsResponse struct {
	ID       int                 `json:"id"`
	Action   string              `json:"action"`
	Outcomes []tabulated.Outcome `json:"outcomes"`
}

// PerformResponse carries the sampled successor.
type PerformResponse struct {
	ID     int    `json:"id"`
	Action string `json:"action"`
	Next   int    `json:"next"`
}

// NewHandler creates a new HTTP handler for the wrapper.
// The tabulated domain is generated if it does not exist yet.
func NewHandler(w *tabulated.Wrapper, opts ...Option) (http.Handler, error) {
	if w.Domain() == nil {
		if _, err := w.GenerateDomain(); err != nil {
			return nil, err
		}
	}

	s := &Server{Wrapper: w}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Get("/domain", s.GetDomain)
	r.Get("/model", s.GetModel)
	r.Route("/states/{id}", func(r chi.Router) {
		r.Get("/", s.GetState)
		r.Get("/actions", s.GetActions)
		r.Get("/actions/{action}/transitions", s.GetTransitions)
		r.Post("/actions/{action}", s.PerformAction)
	})
	if rec := w.Enumerator().Recorder(); rec != nil {
		r.Handle("/metrics", rec.Handler())
	}

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetDomain handles GET /domain.
func (s *Server) GetDomain(w http.ResponseWriter, r *http.Request) {
	tab := s.Wrapper.Domain()
	resp := DomainResponse{
		Name:      tab.Name,
		Class:     domain.ClassState,
		Attribute: domain.AttState,
		NumStates: s.Wrapper.Enumerator().NumStatesEnumerated(),
		Actions:   tab.ActionNames(),
	}
	if class, ok := tab.Class(domain.ClassState); ok {
		if attr, ok := class.Attribute(domain.AttState); ok {
			resp.Lower, resp.Upper = attr.Lower, attr.Upper
		}
	}
	s.writeJSON(w, resp)
}

// GetModel handles GET /model.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	m, err := s.Wrapper.Model()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, m)
}

// GetState handles GET /states/{id}.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	id, src, ok := s.resolveState(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, StateResponse{ID: id, State: src})
}

// GetActions handles GET /states/{id}/actions.
func (s *Server) GetActions(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.resolveState(w, r)
	if !ok {
		return
	}
	ts := tabulated.StateFor(id)
	names := []string{}
	for _, a := range s.Wrapper.Domain().Actions() {
		ok, err := a.Applicable(ts, nil)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if ok {
			names = append(names, a.Name())
		}
	}
	s.writeJSON(w, ActionsResponse{ID: id, Actions: names})
}

// GetTransitions handles GET /states/{id}/actions/{action}/transitions.
func (s *Server) GetTransitions(w http.ResponseWriter, r *http.Request) {
	id, a, ok := s.resolveAction(w, r)
	if !ok {
		return
	}
	tps, err := a.Transitions(tabulated.StateFor(id), nil)
	if err != nil {
		s.writeError(w, err)
		return
	}
	outcomes := make([]tabulated.Outcome, 0, len(tps))
	for _, tp := range tps {
		next, err := s.Wrapper.StateID(tp.State)
		if err != nil {
			s.writeError(w, err)
			return
		}
		outcomes = append(outcomes, tabulated.Outcome{Next: next, P: tp.P})
	}
	s.writeJSON(w, TransitionsResponse{ID: id, Action: a.Name(), Outcomes: outcomes})
}

// PerformAction handles POST /states/{id}/actions/{action}.
func (s *Server) PerformAction(w http.ResponseWriter, r *http.Request) {
	id, a, ok := s.resolveAction(w, r)
	if !ok {
		return
	}
	next, err := a.Perform(tabulated.StateFor(id), nil)
	if err != nil {
		s.writeError(w, err)
		return
	}
	nextID, err := s.Wrapper.StateID(next)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.Logger.Debug("action performed", "id", id, "action", a.Name(), "next", nextID)
	s.writeJSON(w, PerformResponse{ID: id, Action: a.Name(), Next: nextID})
}

func (s *Server) resolveState(w http.ResponseWriter, r *http.Request) (int, *domain.State, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid state id %q", raw), http.StatusBadRequest)
		return 0, nil, false
	}
	src, err := s.Wrapper.SourceDomainState(tabulated.StateFor(id))
	if err != nil {
		s.writeError(w, err)
		return 0, nil, false
	}
	return id, src, true
}

// resolveAction also rejects actions that are not applicable in the state.
func (s *Server) resolveAction(w http.ResponseWriter, r *http.Request) (int, domain.Action, bool) {
	id, _, ok := s.resolveState(w, r)
	if !ok {
		return 0, nil, false
	}
	name := chi.URLParam(r, "action")
	a, found := s.Wrapper.Domain().Action(name)
	if !found {
		http.Error(w, fmt.Sprintf("unknown action %q", name), http.StatusNotFound)
		return 0, nil, false
	}
	applicable, err := a.Applicable(tabulated.StateFor(id), nil)
	if err != nil {
		s.writeError(w, err)
		return 0, nil, false
	}
	if !applicable {
		s.writeError(w, fmt.Errorf("%s in state %d: %w", name, id, domain.ErrNotApplicable))
		return 0, nil, false
	}
	return id, a, true
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrOutOfRange):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotApplicable):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnsupportedDomain):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}
