// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"

	"github.com/riftlens/riftlens/internal/domain/model"
)

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleGetLeaderboard handles GET /leaderboard?timeframe={day|week|month|year}
// requests. A missing timeframe defaults to week.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	raw := r.URL.Query().Get("timeframe")
	if raw == "" {
		raw = string(model.TimeframeWeek)
	}
	timeframe, ok := model.ParseTimeframe(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("unknown timeframe %q", raw))
		return
	}
	entries, err := h.deps.Leaderboard(r.Context(), timeframe)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
