// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/neighborfit/internal/adapters/repository"
	"github.com/okian/neighborfit/internal/domain/model"
)

// NeighborhoodsHandler handles neighborhood lookups.
type NeighborhoodsHandler struct {
	deps NeighborhoodDependencies
}

// NewNeighborhoodsHandler creates a new neighborhoods handler.
func NewNeighborhoodsHandler(deps NeighborhoodDependencies) *NeighborhoodsHandler {
	return &NeighborhoodsHandler{deps: deps}
}

type neighborhoodsResponse struct {
	Query         string                      `json:"query,omitempty"`
	Neighborhoods []model.NeighborhoodSummary `json:"neighborhoods"`
	Count         int                         `json:"count"`
}

type topResponse struct {
	Category      string                      `json:"category"`
	Label         string                      `json:"label"`
	Neighborhoods []model.NeighborhoodSummary `json:"neighborhoods"`
}

func summaries(ns []model.Neighborhood) []model.NeighborhoodSummary {
	out := make([]model.NeighborhoodSummary, len(ns))
	for i := range ns {
		out[i] = ns[i].Summary()
	}
	return out
}

// HandleList handles GET /neighborhoods requests. Query parameters mirror the
// snake_case fields of repository.Filter.
func (h *NeighborhoodsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	ns, err := h.deps.Neighborhoods(r.Context(), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, neighborhoodsResponse{Neighborhoods: summaries(ns), Count: len(ns)})
}

// HandleSearch handles GET /neighborhoods/search?query=Q&limit=N requests.
func (h *NeighborhoodsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	query := r.URL.Query().Get("query")
	ns, err := h.deps.SearchNeighborhoods(r.Context(), query, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, neighborhoodsResponse{Query: query, Neighborhoods: summaries(ns), Count: len(ns)})
}

// HandleGet handles GET /neighborhoods/{id} requests.
func (h *NeighborhoodsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	n, err := h.deps.Neighborhood(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// HandleTop handles GET /neighborhoods/top/{category}?limit=N requests.
func (h *NeighborhoodsHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	category := repository.Category(r.PathValue("category"))
	ns, err := h.deps.TopNeighborhoods(r.Context(), category, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topResponse{
		Category:      string(category),
		Label:         category.Label(),
		Neighborhoods: summaries(ns),
	})
}

func parseFilter(r *http.Request) (repository.Filter, error) {
	q := r.URL.Query()
	f := repository.Filter{
		City:  q.Get("city"),
		State: q.Get("state"),
		Sort:  q.Get("sort"),
	}
	for key, dst := range map[string]*float64{
		"min_safety": &f.MinSafety,
		"max_safety": &f.MaxSafety,
		"min_price":  &f.MinPrice,
		"max_price":  &f.MaxPrice,
		"min_school": &f.MinSchool,
		"max_school": &f.MaxSchool,
	} {
		v, err := queryFloat(r, key)
		if err != nil {
			return repository.Filter{}, err
		}
		*dst = v
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return repository.Filter{}, err
	}
	f.Limit = limit
	return f, nil
}
