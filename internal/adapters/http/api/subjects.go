// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"
)

// SubjectsHandler handles the subject directory and all per-subject routes.
type SubjectsHandler struct {
	deps Dependencies
}

// NewSubjectsHandler creates a new subjects handler.
func NewSubjectsHandler(deps Dependencies) *SubjectsHandler {
	return &SubjectsHandler{deps: deps}
}

// HandleListSubjects handles GET /subjects requests.
func (h *SubjectsHandler) HandleListSubjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	subjects, err := h.deps.Subjects(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

// HandleSubjectRoutes dispatches per-subject routes:
//
//	GET  /subjects/{id}/scores
//	GET  /subjects/{id}/tags
//	POST /subjects/{id}/tags/recalculate?no_refresh=true
func (h *SubjectsHandler) HandleSubjectRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/subjects/")
	parts := strings.Split(path, "/")
	if parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing subject id"))
		return
	}
	subjectID := parts[0]

	switch {
	case len(parts) == 2 && parts[1] == "scores":
		h.handleGetScores(w, r, subjectID)
	case len(parts) == 2 && parts[1] == "tags":
		h.handleGetTags(w, r, subjectID)
	case len(parts) == 3 && parts[1] == "tags" && parts[2] == "recalculate":
		h.handleRecalculateTags(w, r, subjectID)
	default:
		http.NotFound(w, r)
	}
}

// handleGetScores handles GET /subjects/{id}/scores requests.
func (h *SubjectsHandler) handleGetScores(w http.ResponseWriter, r *http.Request, subjectID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	scores, err := h.deps.RoleScores(r.Context(), subjectID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

// handleGetTags handles GET /subjects/{id}/tags requests. The response is
// whatever snapshot is cached, stale version or not; never computed inline.
func (h *SubjectsHandler) handleGetTags(w http.ResponseWriter, r *http.Request, subjectID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snapshot, err := h.deps.PlaystyleTags(r.Context(), subjectID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// handleRecalculateTags handles POST /subjects/{id}/tags/recalculate.
// no_refresh=true skips the upstream match-data refresh.
func (h *SubjectsHandler) handleRecalculateTags(w http.ResponseWriter, r *http.Request, subjectID string) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	noRefresh := strings.EqualFold(r.URL.Query().Get("no_refresh"), "true")
	snapshot, err := h.deps.RecalculatePlaystyleTags(r.Context(), subjectID, noRefresh)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
