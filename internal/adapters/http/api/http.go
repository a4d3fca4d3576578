// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/riftlens/riftlens/internal/app"
	"github.com/riftlens/riftlens/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// RoleScores computes per-role performance snapshots for a subject.
	RoleScores(ctx context.Context, subjectID string) ([]model.RoleScoreSnapshot, error)

	// PlaystyleTags returns the cached tag snapshot without computing.
	PlaystyleTags(ctx context.Context, subjectID string) (model.PlaystyleTagSnapshot, error)

	// RecalculatePlaystyleTags recomputes and caches the subject's tags.
	RecalculatePlaystyleTags(ctx context.Context, subjectID string, noRefresh bool) (model.PlaystyleTagSnapshot, error)

	// DuoSynergy estimates how well two subjects play together.
	DuoSynergy(ctx context.Context, subjectA, subjectB string) (model.DuoSynergyResult, error)

	// Leaderboard ranks subjects by best-role score within a timeframe.
	Leaderboard(ctx context.Context, timeframe model.Timeframe) ([]model.LeaderboardEntry, error)

	// Subjects lists the registered subjects.
	Subjects(ctx context.Context) ([]model.Subject, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	subjectsHandler    *SubjectsHandler
	synergyHandler     *SynergyHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		subjectsHandler:    NewSubjectsHandler(deps),
		synergyHandler:     NewSynergyHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/synergy", MetricsMiddleware(s.synergyHandler.HandleGetSynergy, "synergy"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/subjects", MetricsMiddleware(s.subjectsHandler.HandleListSubjects, "subjects"))
	mux.HandleFunc("/subjects/", MetricsMiddleware(s.subjectsHandler.HandleSubjectRoutes, "subjects"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service-layer sentinels to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		writeError(w, http.StatusNotFound, "subject_not_found", err)
	case errors.Is(err, service.ErrConcurrentRecalculation):
		writeError(w, http.StatusConflict, "recalculation_in_progress", err)
	case errors.Is(err, service.ErrUpstreamUnavailable):
		writeError(w, http.StatusServiceUnavailable, "upstream_unavailable", err)
	case errors.Is(err, service.ErrInvalidRecord):
		writeError(w, http.StatusBadRequest, "invalid_record", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
