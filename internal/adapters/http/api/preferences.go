// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/neighborfit/internal/domain/model"
)

// PreferencesHandler handles preference profile requests.
type PreferencesHandler struct {
	deps PreferenceDependencies
}

// NewPreferencesHandler creates a new preferences handler.
func NewPreferencesHandler(deps PreferenceDependencies) *PreferencesHandler {
	return &PreferencesHandler{deps: deps}
}

// HandlePut handles PUT /preferences/{userID} requests.
func (h *PreferencesHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var p model.PreferenceProfile
	if err := decodeJSON(r, &p); err != nil {
		writeServiceError(w, err)
		return
	}
	stored, err := h.deps.SavePreferences(r.Context(), r.PathValue("userID"), &p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// HandleGet handles GET /preferences/{userID} requests.
func (h *PreferencesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.Preferences(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /preferences/{userID} requests.
func (h *PreferencesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeletePreferences(r.Context(), r.PathValue("userID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSummary handles GET /preferences/{userID}/summary requests.
func (h *PreferencesHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.deps.PreferenceSummary(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
