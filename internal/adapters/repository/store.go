// Package repository defines the neighborfit stores and their in-memory implementations.
package repository

import (
	"context"

	"github.com/okian/neighborfit/internal/domain/model"
)

// PreferenceStore keeps one preference profile per user.
type PreferenceStore interface {
	// Get returns the profile for userID or ErrNotFound.
	Get(ctx context.Context, userID string) (*model.PreferenceProfile, error)
	// Put inserts or replaces the profile for p.UserID and stamps its timestamps.
	// The stored copy is returned.
	Put(ctx context.Context, p *model.PreferenceProfile) (*model.PreferenceProfile, error)
	// Delete removes the profile for userID or returns ErrNotFound.
	Delete(ctx context.Context, userID string) error
	// Count returns the number of stored profiles.
	Count(ctx context.Context) int
}

// NeighborhoodStore holds the read-mostly neighborhood reference data.
type NeighborhoodStore interface {
	// Get returns the neighborhood with id or ErrNotFound.
	Get(ctx context.Context, id string) (model.Neighborhood, error)
	// All returns every neighborhood in load order.
	All(ctx context.Context) []model.Neighborhood
	// List returns the neighborhoods matching f, sorted and truncated as f asks.
	List(ctx context.Context, f Filter) ([]model.Neighborhood, error)
	// Search returns up to limit neighborhoods whose name, city, state or zip
	// code contains query, ignoring case, ordered by name.
	Search(ctx context.Context, query string, limit int) ([]model.Neighborhood, error)
	// Top returns up to limit neighborhoods ranked by category.
	// Returns ErrInvalidCategory for unknown categories.
	Top(ctx context.Context, category Category, limit int) ([]model.Neighborhood, error)
	// Count returns the number of neighborhoods.
	Count(ctx context.Context) int
	// Load replaces the store contents.
	Load(ctx context.Context, ns []model.Neighborhood) error
}

// MatchStore keeps the latest match set per user.
type MatchStore interface {
	// Replace drops the user's previous matches and stores ms in their place.
	// IDs and timestamps are assigned by the store.
	Replace(ctx context.Context, userID string, ms []model.Match) ([]model.Match, error)
	// List returns up to limit matches for userID ordered by rank. limit <= 0 returns all.
	List(ctx context.Context, userID string, limit int) ([]model.Match, error)
	// Has reports whether userID has at least one stored match.
	Has(ctx context.Context, userID string) bool
	// Get returns the match with id or ErrNotFound.
	Get(ctx context.Context, id string) (model.Match, error)
	// SetInteraction records action (and rating when non-zero) on a match owned by userID.
	SetInteraction(ctx context.Context, id, userID string, action model.Interaction, rating int) (model.Match, error)
	// Saved returns userID's saved matches, most recently updated first.
	Saved(ctx context.Context, userID string) ([]model.Match, error)
	// Delete removes a match owned by userID.
	Delete(ctx context.Context, id, userID string) error
	// Users returns the number of users with stored matches.
	Users(ctx context.Context) int
}
