// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"
)

// SynergyHandler handles duo synergy requests.
type SynergyHandler struct {
	deps Dependencies
}

// NewSynergyHandler creates a new synergy handler.
func NewSynergyHandler(deps Dependencies) *SynergyHandler {
	return &SynergyHandler{deps: deps}
}

// HandleGetSynergy handles GET /synergy?a={id}&b={id} requests.
func (h *SynergyHandler) HandleGetSynergy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	a := strings.TrimSpace(r.URL.Query().Get("a"))
	b := strings.TrimSpace(r.URL.Query().Get("b"))
	if a == "" || b == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("both a and b subject ids are required"))
		return
	}
	if a == b {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("a and b must be different subjects"))
		return
	}
	result, err := h.deps.DuoSynergy(r.Context(), a, b)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
