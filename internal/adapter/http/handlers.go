package http

import (
	"net/http"

	"github.com/sagecrest/pulsedash/internal/adapter/ws"
	"github.com/sagecrest/pulsedash/internal/domain/company"
	"github.com/sagecrest/pulsedash/internal/domain/metrics"
	"github.com/sagecrest/pulsedash/internal/domain/monthly"
	"github.com/sagecrest/pulsedash/internal/service"
)

// Server bundles the services behind the HTTP handlers.
type Server struct {
	auth      *service.AuthService
	agg       *service.Aggregator
	monthly   *service.MonthlyService
	overrides *service.OverrideService
	goals     *service.GoalService
	contact   *service.ContactService
	entities  *service.EntityService
	hub       *ws.Hub
}

// NewServer creates a Server. hub may be nil when WebSocket support is
// disabled (tests).
func NewServer(
	auth *service.AuthService,
	agg *service.Aggregator,
	monthlySvc *service.MonthlyService,
	overrides *service.OverrideService,
	goals *service.GoalService,
	contactSvc *service.ContactService,
	entities *service.EntityService,
	hub *ws.Hub,
) *Server {
	return &Server{
		auth:      auth,
		agg:       agg,
		monthly:   monthlySvc,
		overrides: overrides,
		goals:     goals,
		contact:   contactSvc,
		entities:  entities,
		hub:       hub,
	}
}

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// --- Metrics ---

func (s *Server) handleGetMetrics(w http.ResponseWriter, r *http.Request) {
	snap, err := s.agg.Snapshot(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// --- Overrides ---

func (s *Server) handleListOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := s.overrides.List(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overrides)
}

func (s *Server) handlePutOverride(w http.ResponseWriter, r *http.Request) {
	o, ok := readJSON[metrics.Override](w, r)
	if !ok {
		return
	}
	if err := s.overrides.Upsert(r.Context(), &o); err != nil {
		writeDomainError(w, err, "override not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleDeleteOverride(w http.ResponseWriter, r *http.Request) {
	c := company.Company(r.URL.Query().Get("company"))
	key := metrics.Key(r.URL.Query().Get("metric_key"))
	if c == "" || key == "" {
		writeError(w, http.StatusBadRequest, "company and metric_key are required")
		return
	}
	if err := s.overrides.Delete(r.Context(), c, key); err != nil {
		writeDomainError(w, err, "override not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Monthly logs ---

func (s *Server) handleListMonthlyLogs(w http.ResponseWriter, r *http.Request) {
	c := company.Company(urlParam(r, "company"))
	logs, err := s.monthly.List(r.Context(), c)
	if err != nil {
		writeDomainError(w, err, "company not found")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleUpsertMonthlyLog(w http.ResponseWriter, r *http.Request) {
	l, ok := readJSON[monthly.Log](w, r)
	if !ok {
		return
	}
	l.Company = company.Company(urlParam(r, "company"))
	if err := s.monthly.Upsert(r.Context(), &l); err != nil {
		writeDomainError(w, err, "company not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}
