// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/okian/neighborfit/internal/adapters/repository"
	"github.com/okian/neighborfit/internal/domain/model"
	"github.com/okian/neighborfit/internal/domain/scoring"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	PreferenceDependencies
	NeighborhoodDependencies
	MatchDependencies
}

// PreferenceDependencies defines the interface for profile operations.
type PreferenceDependencies interface {
	SavePreferences(ctx context.Context, userID string, p *model.PreferenceProfile) (*model.PreferenceProfile, error)
	Preferences(ctx context.Context, userID string) (*model.PreferenceProfile, error)
	DeletePreferences(ctx context.Context, userID string) error
	PreferenceSummary(ctx context.Context, userID string) (model.PreferenceSummary, error)
}

// NeighborhoodDependencies defines the interface for neighborhood lookups.
type NeighborhoodDependencies interface {
	Neighborhoods(ctx context.Context, f repository.Filter) ([]model.Neighborhood, error)
	Neighborhood(ctx context.Context, id string) (model.Neighborhood, error)
	SearchNeighborhoods(ctx context.Context, query string, limit int) ([]model.Neighborhood, error)
	TopNeighborhoods(ctx context.Context, category repository.Category, limit int) ([]model.Neighborhood, error)
}

// MatchDependencies defines the interface for match operations.
type MatchDependencies interface {
	Calculate(ctx context.Context, userID string, limit int) (scoring.Ranking, error)
	Matches(ctx context.Context, userID string, limit int, recalculate bool) ([]model.MatchResult, error)
	Analysis(ctx context.Context, userID, neighborhoodID string) (scoring.Analysis, error)
	UpdateInteraction(ctx context.Context, userID, matchID string, action model.Interaction, rating int) (model.MatchResult, error)
	SavedMatches(ctx context.Context, userID string) ([]model.MatchResult, error)
	DeleteMatch(ctx context.Context, userID, matchID string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	preferencesHandler  *PreferencesHandler
	neighborhoodHandler *NeighborhoodsHandler
	matchesHandler      *MatchesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		preferencesHandler:  NewPreferencesHandler(deps),
		neighborhoodHandler: NewNeighborhoodsHandler(deps),
		matchesHandler:      NewMatchesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	p := s.preferencesHandler
	mux.HandleFunc("PUT /preferences/{userID}", MetricsMiddleware(p.HandlePut, "preferences"))
	mux.HandleFunc("GET /preferences/{userID}", MetricsMiddleware(p.HandleGet, "preferences"))
	mux.HandleFunc("DELETE /preferences/{userID}", MetricsMiddleware(p.HandleDelete, "preferences"))
	mux.HandleFunc("GET /preferences/{userID}/summary", MetricsMiddleware(p.HandleSummary, "preferences_summary"))

	n := s.neighborhoodHandler
	mux.HandleFunc("GET /neighborhoods", MetricsMiddleware(n.HandleList, "neighborhoods"))
	mux.HandleFunc("GET /neighborhoods/search", MetricsMiddleware(n.HandleSearch, "neighborhoods_search"))
	mux.HandleFunc("GET /neighborhoods/{id}", MetricsMiddleware(n.HandleGet, "neighborhood"))
	mux.HandleFunc("GET /neighborhoods/top/{category}", MetricsMiddleware(n.HandleTop, "neighborhoods_top"))

	m := s.matchesHandler
	mux.HandleFunc("GET /matches/{userID}", MetricsMiddleware(m.HandleList, "matches"))
	mux.HandleFunc("POST /matches/{userID}/calculate", MetricsMiddleware(m.HandleCalculate, "matches_calculate"))
	mux.HandleFunc("GET /matches/{userID}/analysis/{neighborhoodID}", MetricsMiddleware(m.HandleAnalysis, "matches_analysis"))
	mux.HandleFunc("GET /matches/{userID}/saved", MetricsMiddleware(m.HandleSaved, "matches_saved"))
	mux.HandleFunc("PUT /matches/{userID}/{matchID}/interaction", MetricsMiddleware(m.HandleInteraction, "matches_interaction"))
	mux.HandleFunc("DELETE /matches/{userID}/{matchID}", MetricsMiddleware(m.HandleDelete, "matches_delete"))
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

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", ErrBadRequest)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

// queryInt parses an optional integer query parameter; absent means 0.
func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, key)
	}
	return v, nil
}

// queryFloat parses an optional number query parameter; absent means 0.
func queryFloat(r *http.Request, key string) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrBadRequest, key)
	}
	return v, nil
}

// queryBool parses an optional boolean query parameter; absent means false.
func queryBool(r *http.Request, key string) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", ErrBadRequest, key)
	}
	return v, nil
}
