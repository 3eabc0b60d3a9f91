package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/neighborfit/internal/domain/model"
	"github.com/okian/neighborfit/pkg/metrics"
)

// MemoryPreferenceStore is a map-backed PreferenceStore.
// Profiles are copied on the way in and out.
type MemoryPreferenceStore struct {
	mu     sync.RWMutex
	byUser map[string]*model.PreferenceProfile
	opts   options
}

var _ PreferenceStore = (*MemoryPreferenceStore)(nil)

// NewPreferenceStore creates an empty MemoryPreferenceStore.
func NewPreferenceStore(opts ...Option) *MemoryPreferenceStore {
	return &MemoryPreferenceStore{
		byUser: make(map[string]*model.PreferenceProfile),
		opts:   applyOptions(opts),
	}
}

// Get implements PreferenceStore.Get.
func (s *MemoryPreferenceStore) Get(ctx context.Context, userID string) (*model.PreferenceProfile, error) {
	defer recordQuery(time.Now())

	s.mu.RLock()
	p, ok := s.byUser[userID]
	s.mu.RUnlock()
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

// Put implements PreferenceStore.Put. CreatedAt survives replacement.
func (s *MemoryPreferenceStore) Put(ctx context.Context, p *model.PreferenceProfile) (*model.PreferenceProfile, error) {
	defer recordUpdate(time.Now())

	if p == nil || p.UserID == "" {
		return nil, ErrMissingUserID
	}
	stored := p.Clone()
	now := s.opts.now()

	s.mu.Lock()
	if old, ok := s.byUser[p.UserID]; ok {
		stored.CreatedAt = old.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	s.byUser[p.UserID] = stored
	count := len(s.byUser)
	s.mu.Unlock()

	metrics.UpdateProfilesTotal(count)
	return stored.Clone(), nil
}

// Delete implements PreferenceStore.Delete.
func (s *MemoryPreferenceStore) Delete(ctx context.Context, userID string) error {
	defer recordUpdate(time.Now())

	s.mu.Lock()
	if _, ok := s.byUser[userID]; !ok {
		s.mu.Unlock()
		metrics.RecordErrorByComponent("repository", "not_found")
		return ErrNotFound
	}
	delete(s.byUser, userID)
	count := len(s.byUser)
	s.mu.Unlock()

	metrics.UpdateProfilesTotal(count)
	return nil
}

// Count implements PreferenceStore.Count.
func (s *MemoryPreferenceStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUser)
}

func recordQuery(start time.Time) {
	metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
}

func recordUpdate(start time.Time) {
	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
}
