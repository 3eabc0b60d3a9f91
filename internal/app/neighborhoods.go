package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okian/neighborfit/internal/adapters/repository"
	"github.com/okian/neighborfit/internal/domain/model"
	"github.com/okian/neighborfit/internal/validation"
	"github.com/okian/neighborfit/pkg/metrics"
)

// Neighborhoods lists neighborhoods matching f. A zero limit uses the default.
func (s *Service) Neighborhoods(ctx context.Context, f repository.Filter) ([]model.Neighborhood, error) {
	if verr := validation.ValidateStruct(f); verr != nil {
		metrics.RecordInputError()
		return nil, verr
	}
	if f.Limit == 0 {
		f.Limit = s.defaultListLimit
	}
	ns, err := s.neighborhoods.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list neighborhoods: %w", err)
	}
	return ns, nil
}

// Neighborhood returns the neighborhood with id.
func (s *Service) Neighborhood(ctx context.Context, id string) (model.Neighborhood, error) {
	n, err := s.neighborhoods.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Neighborhood{}, fmt.Errorf("%w: %w", ErrNeighborhoodNotFound, err)
		}
		return model.Neighborhood{}, fmt.Errorf("get neighborhood: %w", err)
	}
	return n, nil
}

// searchQuery is a free-text neighborhood search.
type searchQuery struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit" validate:"min=1,max=50"`
}

// SearchNeighborhoods finds neighborhoods whose name, city, state or zip code
// contains query. A zero limit uses the default.
func (s *Service) SearchNeighborhoods(ctx context.Context, query string, limit int) ([]model.Neighborhood, error) {
	q := searchQuery{Query: strings.TrimSpace(query), Limit: limit}
	if q.Limit == 0 {
		q.Limit = defaultSearchLimit
	}
	if verr := validation.ValidateStruct(q); verr != nil {
		metrics.RecordInputError()
		return nil, verr
	}
	ns, err := s.neighborhoods.Search(ctx, q.Query, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("search neighborhoods: %w", err)
	}
	return ns, nil
}

// TopNeighborhoods ranks neighborhoods by a single category. A limit <= 0 uses
// the default; larger values are capped.
func (s *Service) TopNeighborhoods(ctx context.Context, category repository.Category, limit int) ([]model.Neighborhood, error) {
	switch {
	case limit <= 0:
		limit = defaultTopLimit
	case limit > maxTopLimit:
		limit = maxTopLimit
	}
	ns, err := s.neighborhoods.Top(ctx, category, limit)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCategory) {
			metrics.RecordInputError()
		}
		return nil, fmt.Errorf("top neighborhoods: %w", err)
	}
	return ns, nil
}
