// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/neighborfit/internal/adapters/repository"
	"github.com/okian/neighborfit/internal/domain/scoring"
	"github.com/okian/neighborfit/pkg/logger"
	"github.com/okian/neighborfit/pkg/metrics"
)

// Default limits, matching the public API contract.
const (
	defaultMatchLimit  = 10
	maxMatchLimit      = 100
	defaultListLimit   = 20
	defaultTopLimit    = 10
	maxTopLimit        = 20
	defaultSearchLimit = 10
	defaultTimeout     = 5 * time.Second
)

// Service implements the API dependencies for neighborhood matching.
type Service struct {
	mu sync.RWMutex

	// Core components
	preferences   repository.PreferenceStore
	neighborhoods repository.NeighborhoodStore
	matches       repository.MatchStore
	scorer        *scoring.Scorer

	// Configuration
	workerCount       int
	weights           scoring.Weights
	defaultMatchLimit int
	maxMatchLimit     int
	defaultListLimit  int
	rankingTimeout    time.Duration
	seedFile          string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of goroutines scoring one ranking.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWeights sets the category weights. Start rejects invalid weights.
func WithWeights(w scoring.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithMatchLimits sets the default and maximum number of matches per request.
func WithMatchLimits(def, maxLimit int) Option {
	return func(s *Service) {
		if def > 0 {
			s.defaultMatchLimit = def
		}
		if maxLimit >= s.defaultMatchLimit {
			s.maxMatchLimit = maxLimit
		}
	}
}

// WithListLimit sets the default neighborhood listing size.
func WithListLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.defaultListLimit = limit
		}
	}
}

// WithRankingTimeout bounds one ranking run.
func WithRankingTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.rankingTimeout = d
		}
	}
}

// WithSeedFile names the JSON neighborhood file loaded by Start.
func WithSeedFile(path string) Option {
	return func(s *Service) {
		s.seedFile = path
	}
}

// WithPreferenceStore replaces the in-memory preference store.
func WithPreferenceStore(store repository.PreferenceStore) Option {
	return func(s *Service) {
		if store != nil {
			s.preferences = store
		}
	}
}

// WithNeighborhoodStore replaces the in-memory neighborhood store.
func WithNeighborhoodStore(store repository.NeighborhoodStore) Option {
	return func(s *Service) {
		if store != nil {
			s.neighborhoods = store
		}
	}
}

// WithMatchStore replaces the in-memory match store.
func WithMatchStore(store repository.MatchStore) Option {
	return func(s *Service) {
		if store != nil {
			s.matches = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		preferences:       repository.NewPreferenceStore(),
		neighborhoods:     repository.NewNeighborhoodStore(),
		matches:           repository.NewMatchStore(),
		workerCount:       runtime.NumCPU() * 2,
		weights:           scoring.DefaultWeights(),
		defaultMatchLimit: defaultMatchLimit,
		maxMatchLimit:     maxMatchLimit,
		defaultListLimit:  defaultListLimit,
		rankingTimeout:    defaultTimeout,
		logger:            nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	s.scorer = scoring.New(
		scoring.WithWeights(s.weights),
		scoring.WithConcurrency(s.workerCount),
	)
	return s
}

// Start validates the configuration and loads the seed file, if any.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger.Info(ctx, "starting matching service...")

	if err := s.weights.Validate(); err != nil {
		return fmt.Errorf("start service: %w", err)
	}

	if s.seedFile != "" {
		ns, err := repository.LoadNeighborhoods(s.seedFile)
		if err != nil {
			return fmt.Errorf("start service: %w", err)
		}
		if err := s.neighborhoods.Load(ctx, ns); err != nil {
			return fmt.Errorf("start service: %w", err)
		}
		s.logger.Info(ctx, "loaded neighborhoods",
			logger.String("seedFile", s.seedFile),
			logger.Int("count", len(ns)),
		)
	}

	metrics.UpdateWorkerCount(s.workerCount)
	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.Int("workers", s.workerCount),
		logger.Int("neighborhoods", s.neighborhoods.Count(ctx)),
		logger.Any("weights", s.weights),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "matching service stopped")
}

// Started reports whether Start completed.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// log returns the configured logger, falling back to a no-op one before Start.
func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Nop()
	}
	return s.logger
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	neighborhoods := s.neighborhoods.Count(ctx)
	profiles := s.preferences.Count(ctx)
	matchSets := s.matches.Users(ctx)

	stats := map[string]interface{}{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"neighborhoods": neighborhoods,
		"profiles":      profiles,
		"matchSets":     matchSets,
		"weights":       s.weights,
	}

	metrics.UpdateNeighborhoodsTotal(neighborhoods)
	metrics.UpdateProfilesTotal(profiles)
	metrics.UpdateMatchSetsTotal(matchSets)
	metrics.UpdateWorkerCount(s.workerCount)

	return stats
}

// clampMatchLimit applies the default and maximum match limits.
func (s *Service) clampMatchLimit(limit int) int {
	switch {
	case limit <= 0:
		return s.defaultMatchLimit
	case limit > s.maxMatchLimit:
		return s.maxMatchLimit
	default:
		return limit
	}
}
