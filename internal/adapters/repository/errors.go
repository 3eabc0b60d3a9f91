package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidLimit       = errors.New("invalid limit")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidInteraction = errors.New("invalid interaction")
	ErrInvalidRating      = errors.New("invalid rating")
	ErrMissingUserID      = errors.New("missing user id")
)
