// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/neighborfit/internal/domain/model"
	"github.com/okian/neighborfit/internal/domain/scoring"
)

// MatchesHandler handles match requests.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

type matchesResponse struct {
	UserID    string              `json:"user_id"`
	Matches   []model.MatchResult `json:"matches"`
	Count     int                 `json:"count"`
	Algorithm *scoring.Algorithm  `json:"algorithm,omitempty"`
}

// interactionRequest is the body of PUT /matches/{userID}/{matchID}/interaction.
type interactionRequest struct {
	Action model.Interaction `json:"action"`
	Rating int               `json:"rating,omitempty"`
}

// HandleList handles GET /matches/{userID}?limit=N&recalculate=bool requests.
func (h *MatchesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	recalculate, err := queryBool(r, "recalculate")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	userID := r.PathValue("userID")
	results, err := h.deps.Matches(r.Context(), userID, limit, recalculate)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matchesResponse{UserID: userID, Matches: results, Count: len(results)})
}

// HandleCalculate handles POST /matches/{userID}/calculate?limit=N requests.
func (h *MatchesHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	userID := r.PathValue("userID")
	ranking, err := h.deps.Calculate(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matchesResponse{
		UserID:    userID,
		Matches:   ranking.Matches,
		Count:     len(ranking.Matches),
		Algorithm: &ranking.Algorithm,
	})
}

// HandleAnalysis handles GET /matches/{userID}/analysis/{neighborhoodID} requests.
func (h *MatchesHandler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	a, err := h.deps.Analysis(r.Context(), r.PathValue("userID"), r.PathValue("neighborhoodID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleSaved handles GET /matches/{userID}/saved requests.
func (h *MatchesHandler) HandleSaved(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	results, err := h.deps.SavedMatches(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matchesResponse{UserID: userID, Matches: results, Count: len(results)})
}

// HandleInteraction handles PUT /matches/{userID}/{matchID}/interaction requests.
func (h *MatchesHandler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	var req interactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	res, err := h.deps.UpdateInteraction(r.Context(), r.PathValue("userID"), r.PathValue("matchID"), req.Action, req.Rating)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleDelete handles DELETE /matches/{userID}/{matchID} requests.
func (h *MatchesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteMatch(r.Context(), r.PathValue("userID"), r.PathValue("matchID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
