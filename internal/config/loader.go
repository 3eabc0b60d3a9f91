package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment names used by Load.
const (
	EnvPrefix     = "NEIGHBORFIT_"
	EnvConfigFile = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if NEIGHBORFIT_CONFIG is set
//  3. env (prefix NEIGHBORFIT_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// NEIGHBORFIT_WORKER_COUNT -> worker_count, NEIGHBORFIT_WEIGHTS_BUDGET -> weights.budget,
	// NEIGHBORFIT_METRICS_NAMESPACE -> metrics.namespace.
	envProvider := env.Provider(EnvPrefix, ".", envKey)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps an environment variable name to a koanf key. Keys are flat
// except for the weights and metrics groups; NEIGHBORFIT_METRICS_LABELS_ENV
// sets metrics.labels.env.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(s, "weights_"); ok {
		return "weights." + rest
	}
	if rest, ok := strings.CutPrefix(s, "metrics_"); ok {
		if label, ok := strings.CutPrefix(rest, "labels_"); ok {
			return "metrics.labels." + label
		}
		return "metrics." + rest
	}
	return s
}
