package config

import (
	"errors"
)

// Sentinel error kinds for this package, matched with errors.Is.
var (
	// ErrInvalidConfig wraps every Validate failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps file, env and decode failures in Load.
	ErrLoadConfig = errors.New("load config failed")
)
