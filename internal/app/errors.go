package service

import "errors"

// Sentinel errors returned by Service. Store errors are wrapped alongside them,
// so errors.Is(err, repository.ErrNotFound) holds as well.
var (
	ErrPreferencesNotFound  = errors.New("preferences not found")
	ErrNeighborhoodNotFound = errors.New("neighborhood not found")
	ErrMatchNotFound        = errors.New("match not found")
)
