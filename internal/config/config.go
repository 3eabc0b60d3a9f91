// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults; Load layers file and env on top.
// - All functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/okian/neighborfit/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WorkerCount bounds the goroutines scoring one ranking.
	WorkerCount int `koanf:"worker_count"`

	// DefaultMatchLimit applies when a match request carries no limit.
	DefaultMatchLimit int `koanf:"default_match_limit"`

	// MaxMatchLimit caps GET /matches/{userID}?limit.
	MaxMatchLimit int `koanf:"max_match_limit"`

	// DefaultListLimit applies to neighborhood listings without a limit.
	DefaultListLimit int `koanf:"default_list_limit"`

	// RankingTimeoutMS bounds a single ranking run.
	RankingTimeoutMS int `koanf:"ranking_timeout_ms"`

	// SeedFile points at the JSON array of neighborhoods loaded at startup.
	// Empty starts with no neighborhoods.
	SeedFile string `koanf:"seed_file"`

	// Weights are the category weights of the compatibility score.
	Weights scoring.Weights `koanf:"weights"`

	// Metrics shapes the names and labels of the exported Prometheus metrics.
	Metrics Metrics `koanf:"metrics"`
}

// Metrics configures the Prometheus metrics manager.
type Metrics struct {
	Namespace string            `koanf:"namespace"`
	Subsystem string            `koanf:"subsystem"`
	Prefix    string            `koanf:"prefix"`
	Buckets   []float64         `koanf:"buckets"` // latency buckets in ms; YAML only
	Labels    map[string]string `koanf:"labels"`  // constant labels on every metric
}

var metricNamePart = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`) //nolint:gochecknoglobals // compiled once

func (m Metrics) validate() error {
	for key, v := range map[string]string{"namespace": m.Namespace, "subsystem": m.Subsystem, "prefix": m.Prefix} {
		if v != "" && !metricNamePart.MatchString(v) {
			return fmt.Errorf("%w: metrics.%s %q is not a valid metric name part", ErrInvalidConfig, key, v)
		}
	}
	for name := range m.Labels {
		if !metricNamePart.MatchString(name) || strings.HasPrefix(name, "__") {
			return fmt.Errorf("%w: metrics label %q is not a valid label name", ErrInvalidConfig, name)
		}
	}
	if !slices.IsSorted(m.Buckets) || len(slices.Compact(slices.Clone(m.Buckets))) != len(m.Buckets) {
		return fmt.Errorf("%w: metrics.buckets must be strictly increasing", ErrInvalidConfig)
	}
	return nil
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":8080",
		WorkerCount:       runtime.NumCPU() * 2,
		DefaultMatchLimit: 10,
		MaxMatchLimit:     100,
		DefaultListLimit:  20,
		RankingTimeoutMS:  5000,
		SeedFile:          "data/neighborhoods.json",
		Weights:           scoring.DefaultWeights(),
		Metrics: Metrics{
			Namespace: "neighborfit",
			Subsystem: "matching",
		},
	}
}

// RankingTimeout returns RankingTimeoutMS as a duration.
func (c *Config) RankingTimeout() time.Duration {
	return time.Duration(c.RankingTimeoutMS) * time.Millisecond
}

// JSONLogs reports whether logs should be written as JSON.
func (c *Config) JSONLogs() bool {
	return strings.EqualFold(c.LogFormat, "json")
}

// Validate checks the values that would otherwise fail at runtime.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	case c.DefaultMatchLimit < 1:
		return fmt.Errorf("%w: default_match_limit must be positive, got %d", ErrInvalidConfig, c.DefaultMatchLimit)
	case c.MaxMatchLimit < c.DefaultMatchLimit:
		return fmt.Errorf("%w: max_match_limit %d is below default_match_limit %d", ErrInvalidConfig, c.MaxMatchLimit, c.DefaultMatchLimit)
	case c.DefaultListLimit < 1:
		return fmt.Errorf("%w: default_list_limit must be positive, got %d", ErrInvalidConfig, c.DefaultListLimit)
	case c.RankingTimeoutMS < 1:
		return fmt.Errorf("%w: ranking_timeout_ms must be positive, got %d", ErrInvalidConfig, c.RankingTimeoutMS)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return c.Metrics.validate()
}
