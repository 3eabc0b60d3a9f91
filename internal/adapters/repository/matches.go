package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/neighborfit/internal/domain/model"
	"github.com/okian/neighborfit/pkg/metrics"
)

// Rating bounds for match feedback.
const (
	MinRating = 1
	MaxRating = 5
)

// MemoryMatchStore is a map-backed MatchStore. Each user's set is kept in rank order.
type MemoryMatchStore struct {
	mu     sync.RWMutex
	byUser map[string][]string
	byID   map[string]*model.Match
	opts   options
}

var _ MatchStore = (*MemoryMatchStore)(nil)

// NewMatchStore creates an empty MemoryMatchStore.
func NewMatchStore(opts ...Option) *MemoryMatchStore {
	return &MemoryMatchStore{
		byUser: make(map[string][]string),
		byID:   make(map[string]*model.Match),
		opts:   applyOptions(opts),
	}
}

// Replace implements MatchStore.Replace.
func (s *MemoryMatchStore) Replace(ctx context.Context, userID string, ms []model.Match) ([]model.Match, error) {
	defer recordUpdate(time.Now())

	if userID == "" {
		return nil, ErrMissingUserID
	}
	now := s.opts.now()
	stored := make([]model.Match, len(ms))
	for i, m := range ms {
		m.ID = s.opts.newID()
		m.UserID = userID
		m.CreatedAt = now
		m.UpdatedAt = now
		stored[i] = m
	}
	sort.SliceStable(stored, func(i, j int) bool { return stored[i].Rank < stored[j].Rank })
	ids := make([]string, len(stored))
	for i := range stored {
		ids[i] = stored[i].ID
	}

	s.mu.Lock()
	for _, id := range s.byUser[userID] {
		delete(s.byID, id)
	}
	for i := range stored {
		m := stored[i]
		s.byID[m.ID] = &m
	}
	if len(ids) == 0 {
		delete(s.byUser, userID)
	} else {
		s.byUser[userID] = ids
	}
	users := len(s.byUser)
	s.mu.Unlock()

	metrics.UpdateMatchSetsTotal(users)
	return stored, nil
}

// List implements MatchStore.List.
func (s *MemoryMatchStore) List(ctx context.Context, userID string, limit int) ([]model.Match, error) {
	defer recordQuery(time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byUser[userID]
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]model.Match, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.byID[id])
	}
	return out, nil
}

// Has implements MatchStore.Has.
func (s *MemoryMatchStore) Has(ctx context.Context, userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUser[userID]) > 0
}

// Get implements MatchStore.Get.
func (s *MemoryMatchStore) Get(ctx context.Context, id string) (model.Match, error) {
	defer recordQuery(time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byID[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Match{}, ErrNotFound
	}
	return *m, nil
}

// SetInteraction implements MatchStore.SetInteraction. A match owned by another
// user is reported as ErrNotFound.
func (s *MemoryMatchStore) SetInteraction(ctx context.Context, id, userID string, action model.Interaction, rating int) (model.Match, error) {
	defer recordUpdate(time.Now())

	if action == model.InteractionNone || !action.Valid() {
		return model.Match{}, fmt.Errorf("%w: %q", ErrInvalidInteraction, action)
	}
	if rating != 0 && (rating < MinRating || rating > MaxRating) {
		return model.Match{}, fmt.Errorf("%w: %d", ErrInvalidRating, rating)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok || m.UserID != userID {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Match{}, ErrNotFound
	}
	m.Interaction = action
	if rating != 0 {
		m.Rating = rating
	}
	m.UpdatedAt = s.opts.now()
	return *m, nil
}

// Saved implements MatchStore.Saved.
func (s *MemoryMatchStore) Saved(ctx context.Context, userID string) ([]model.Match, error) {
	defer recordQuery(time.Now())

	s.mu.RLock()
	out := make([]model.Match, 0)
	for _, id := range s.byUser[userID] {
		if m := s.byID[id]; m.Interaction == model.InteractionSaved {
			out = append(out, *m)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Delete implements MatchStore.Delete.
func (s *MemoryMatchStore) Delete(ctx context.Context, id, userID string) error {
	defer recordUpdate(time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok || m.UserID != userID {
		metrics.RecordErrorByComponent("repository", "not_found")
		return ErrNotFound
	}
	delete(s.byID, id)
	ids := s.byUser[userID]
	for i, other := range ids {
		if other == id {
			ids = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(s.byUser, userID)
	} else {
		s.byUser[userID] = ids
	}
	metrics.UpdateMatchSetsTotal(len(s.byUser))
	return nil
}

// Users implements MatchStore.Users.
func (s *MemoryMatchStore) Users(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUser)
}
