package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/neighborfit/internal/domain/model"
	"github.com/okian/neighborfit/pkg/metrics"
)

// Sort keys accepted by Filter.Sort.
const (
	SortName        = "name"
	SortSafety      = "safety"
	SortPrice       = "price"
	SortSchools     = "schools"
	SortWalkability = "walkability"
)

// Filter narrows a neighborhood listing. Zero bounds are ignored; a set bound
// excludes neighborhoods whose value for that field is unknown.
type Filter struct {
	City      string  `json:"city"`
	State     string  `json:"state"`
	MinSafety float64 `json:"min_safety" validate:"omitempty,min=1,max=10"`
	MaxSafety float64 `json:"max_safety" validate:"omitempty,min=1,max=10"`
	MinPrice  float64 `json:"min_price" validate:"gte=0"`
	MaxPrice  float64 `json:"max_price" validate:"gte=0"`
	MinSchool float64 `json:"min_school" validate:"omitempty,min=1,max=10"`
	MaxSchool float64 `json:"max_school" validate:"omitempty,min=1,max=10"`
	Sort      string  `json:"sort" validate:"omitempty,oneof=name safety price schools walkability"`
	Limit     int     `json:"limit" validate:"gte=0,max=100"`
}

// Category selects the ranking used by NeighborhoodStore.Top.
type Category string

// Supported categories.
const (
	CategorySafety         Category = "safety"
	CategorySchools        Category = "schools"
	CategoryWalkability    Category = "walkability"
	CategoryAffordable     Category = "affordable"
	CategoryFamilyFriendly Category = "family-friendly"
)

// Label is the display name of the category.
func (c Category) Label() string {
	switch c {
	case CategorySafety:
		return "Safety"
	case CategorySchools:
		return "Education"
	case CategoryWalkability:
		return "Walkability"
	case CategoryAffordable:
		return "Affordability"
	case CategoryFamilyFriendly:
		return "Family-Friendly"
	default:
		return ""
	}
}

// ordering extracts a sort key and whether higher values rank first.
type ordering struct {
	key  func(n *model.Neighborhood) float64
	desc bool
}

var categoryOrder = map[Category]ordering{ //nolint:gochecknoglobals // static lookup table
	CategorySafety:         {key: func(n *model.Neighborhood) float64 { return n.Safety.SafetyRating }, desc: true},
	CategorySchools:        {key: func(n *model.Neighborhood) float64 { return n.Education.SchoolRating }, desc: true},
	CategoryWalkability:    {key: func(n *model.Neighborhood) float64 { return n.Transportation.WalkabilityScore }, desc: true},
	CategoryAffordable:     {key: func(n *model.Neighborhood) float64 { return n.Housing.MedianHomePrice }},
	CategoryFamilyFriendly: {key: func(n *model.Neighborhood) float64 { return n.Lifestyle.FamilyFriendlyScore }, desc: true},
}

var sortOrder = map[string]ordering{ //nolint:gochecknoglobals // static lookup table
	SortSafety:      categoryOrder[CategorySafety],
	SortPrice:       categoryOrder[CategoryAffordable],
	SortSchools:     categoryOrder[CategorySchools],
	SortWalkability: categoryOrder[CategoryWalkability],
}

// MemoryNeighborhoodStore is a slice-backed NeighborhoodStore with an ID index.
type MemoryNeighborhoodStore struct {
	mu    sync.RWMutex
	items []model.Neighborhood
	byID  map[string]int
}

var _ NeighborhoodStore = (*MemoryNeighborhoodStore)(nil)

// NewNeighborhoodStore creates a store holding ns.
func NewNeighborhoodStore(ns ...model.Neighborhood) *MemoryNeighborhoodStore {
	s := &MemoryNeighborhoodStore{}
	s.replace(ns)
	return s
}

// Get implements NeighborhoodStore.Get.
func (s *MemoryNeighborhoodStore) Get(ctx context.Context, id string) (model.Neighborhood, error) {
	defer recordQuery(time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Neighborhood{}, ErrNotFound
	}
	return s.items[i], nil
}

// All implements NeighborhoodStore.All.
func (s *MemoryNeighborhoodStore) All(ctx context.Context) []model.Neighborhood {
	defer recordQuery(time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Neighborhood, len(s.items))
	copy(out, s.items)
	return out
}

// List implements NeighborhoodStore.List. The default order is by name.
func (s *MemoryNeighborhoodStore) List(ctx context.Context, f Filter) ([]model.Neighborhood, error) {
	defer recordQuery(time.Now())

	if f.Limit < 0 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	out := make([]model.Neighborhood, 0, len(s.items))
	for i := range s.items {
		if f.matches(&s.items[i]) {
			out = append(out, s.items[i])
		}
	}
	s.mu.RUnlock()

	if o, ok := sortOrder[f.Sort]; ok {
		o.sort(out)
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return truncate(out, f.Limit), nil
}

// Search implements NeighborhoodStore.Search.
func (s *MemoryNeighborhoodStore) Search(ctx context.Context, query string, limit int) ([]model.Neighborhood, error) {
	defer recordQuery(time.Now())

	if limit < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	query = strings.TrimSpace(query)

	s.mu.RLock()
	out := make([]model.Neighborhood, 0)
	for i := range s.items {
		n := &s.items[i]
		if containsFold(n.Name, query) || containsFold(n.City, query) ||
			containsFold(n.State, query) || containsFold(n.ZipCode, query) {
			out = append(out, *n)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return truncate(out, limit), nil
}

// Top implements NeighborhoodStore.Top. Neighborhoods without a value for the
// category are left out.
func (s *MemoryNeighborhoodStore) Top(ctx context.Context, category Category, limit int) ([]model.Neighborhood, error) {
	defer recordQuery(time.Now())

	o, ok := categoryOrder[category]
	if !ok {
		metrics.RecordErrorByComponent("repository", "invalid_category")
		return nil, ErrInvalidCategory
	}
	if limit < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	out := make([]model.Neighborhood, 0, len(s.items))
	for i := range s.items {
		if o.key(&s.items[i]) > 0 {
			out = append(out, s.items[i])
		}
	}
	s.mu.RUnlock()

	o.sort(out)
	return truncate(out, limit), nil
}

// Count implements NeighborhoodStore.Count.
func (s *MemoryNeighborhoodStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Load implements NeighborhoodStore.Load.
func (s *MemoryNeighborhoodStore) Load(ctx context.Context, ns []model.Neighborhood) error {
	defer recordUpdate(time.Now())

	if err := ctx.Err(); err != nil {
		return err
	}
	s.replace(ns)
	return nil
}

func (s *MemoryNeighborhoodStore) replace(ns []model.Neighborhood) {
	items := make([]model.Neighborhood, len(ns))
	copy(items, ns)
	byID := make(map[string]int, len(items))
	for i := range items {
		byID[items[i].ID] = i
	}

	s.mu.Lock()
	s.items = items
	s.byID = byID
	s.mu.Unlock()

	metrics.UpdateNeighborhoodsTotal(len(items))
}

func (f Filter) matches(n *model.Neighborhood) bool {
	if f.City != "" && !containsFold(n.City, f.City) {
		return false
	}
	if f.State != "" && !containsFold(n.State, f.State) {
		return false
	}
	return within(n.Safety.SafetyRating, f.MinSafety, f.MaxSafety) &&
		within(n.Housing.MedianHomePrice, f.MinPrice, f.MaxPrice) &&
		within(n.Education.SchoolRating, f.MinSchool, f.MaxSchool)
}

// within reports whether v satisfies the set bounds. Unknown values fail any set bound.
func within(v, lo, hi float64) bool {
	if lo <= 0 && hi <= 0 {
		return true
	}
	if v <= 0 {
		return false
	}
	return (lo <= 0 || v >= lo) && (hi <= 0 || v <= hi)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

// sort orders ns by the key; unknown values go last and ties are broken by name.
func (o ordering) sort(ns []model.Neighborhood) {
	sort.SliceStable(ns, func(i, j int) bool {
		a, b := o.key(&ns[i]), o.key(&ns[j])
		switch {
		case a <= 0 && b <= 0:
			return ns[i].Name < ns[j].Name
		case a <= 0:
			return false
		case b <= 0:
			return true
		case a == b:
			return ns[i].Name < ns[j].Name
		case o.desc:
			return a > b
		default:
			return a < b
		}
	})
}

func truncate(ns []model.Neighborhood, limit int) []model.Neighborhood {
	if limit > 0 && len(ns) > limit {
		return ns[:limit]
	}
	return ns
}
