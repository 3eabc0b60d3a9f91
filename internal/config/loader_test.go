package config_test

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/okian/neighborfit/internal/config"
	"github.com/okian/neighborfit/internal/domain/scoring"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
				convey.So(cfg.DefaultMatchLimit, convey.ShouldEqual, 10)
				convey.So(cfg.MaxMatchLimit, convey.ShouldEqual, 100)
				convey.So(cfg.RankingTimeoutMS, convey.ShouldEqual, 5000)
				convey.So(cfg.Weights, convey.ShouldResemble, scoring.DefaultWeights())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("NEIGHBORFIT_ADDR", ":9090")
			_ = os.Setenv("NEIGHBORFIT_WORKER_COUNT", "16")
			_ = os.Setenv("NEIGHBORFIT_MAX_MATCH_LIMIT", "50")
			_ = os.Setenv("NEIGHBORFIT_RANKING_TIMEOUT_MS", "250")
			_ = os.Setenv("NEIGHBORFIT_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.MaxMatchLimit, convey.ShouldEqual, 50)
				convey.So(cfg.RankingTimeout().Milliseconds(), convey.ShouldEqual, 250)
				convey.So(cfg.JSONLogs(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading weights from environment variables", func() {
			_ = os.Setenv("NEIGHBORFIT_WEIGHTS_BUDGET", "0.5")
			_ = os.Setenv("NEIGHBORFIT_WEIGHTS_LIFESTYLE", "0.2")
			_ = os.Setenv("NEIGHBORFIT_WEIGHTS_LOCATION", "0.1")
			_ = os.Setenv("NEIGHBORFIT_WEIGHTS_AMENITIES", "0.1")
			_ = os.Setenv("NEIGHBORFIT_WEIGHTS_SAFETY", "0.1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the nested weights are set", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Weights.Budget, convey.ShouldEqual, 0.5)
				convey.So(cfg.Weights.Safety, convey.ShouldEqual, 0.1)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":7070"
worker_count: 4
default_match_limit: 5
seed_file: "/tmp/neighborhoods.json"
weights:
  budget: 0.2
  lifestyle: 0.2
  location: 0.2
  amenities: 0.2
  safety: 0.2
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("NEIGHBORFIT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
				convey.So(cfg.DefaultMatchLimit, convey.ShouldEqual, 5)
				convey.So(cfg.SeedFile, convey.ShouldEqual, "/tmp/neighborhoods.json")
				convey.So(cfg.Weights.Amenities, convey.ShouldEqual, 0.2)
			})

			convey.Convey("And missing fields keep their defaults", func() {
				convey.So(cfg.MaxMatchLimit, convey.ShouldEqual, 100)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			})
		})

		convey.Convey("When loading the metrics section", func() {
			tmpFile := createTempConfigFile(`
metrics:
  subsystem: ranking
  prefix: nf_
  buckets: [1, 5, 25]
  labels:
    region: eu
`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("NEIGHBORFIT_CONFIG", tmpFile)
			_ = os.Setenv("NEIGHBORFIT_METRICS_NAMESPACE", "homes")
			_ = os.Setenv("NEIGHBORFIT_METRICS_LABELS_ENV", "staging")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file and env values are merged", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Metrics.Namespace, convey.ShouldEqual, "homes")
				convey.So(cfg.Metrics.Subsystem, convey.ShouldEqual, "ranking")
				convey.So(cfg.Metrics.Prefix, convey.ShouldEqual, "nf_")
				convey.So(cfg.Metrics.Buckets, convey.ShouldResemble, []float64{1, 5, 25})
				convey.So(cfg.Metrics.Labels, convey.ShouldResemble, map[string]string{"region": "eu", "env": "staging"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("addr: \":7070\"\nworker_count: 4\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("NEIGHBORFIT_CONFIG", tmpFile)
			_ = os.Setenv("NEIGHBORFIT_WORKER_COUNT", "12")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 12)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile("addr: [unclosed\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("NEIGHBORFIT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("NEIGHBORFIT_CONFIG", "/non/existent/neighborfit.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("NEIGHBORFIT_WORKER_COUNT", "many")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the weights do not sum to one", func() {
			_ = os.Setenv("NEIGHBORFIT_WEIGHTS_BUDGET", "0.9")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, scoring.ErrInvalidWeights), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			tmpFile := createTempConfigFile("addr: \"\"\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("NEIGHBORFIT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"NEIGHBORFIT_CONFIG",
		"NEIGHBORFIT_ADDR",
		"NEIGHBORFIT_WORKER_COUNT",
		"NEIGHBORFIT_MAX_MATCH_LIMIT",
		"NEIGHBORFIT_RANKING_TIMEOUT_MS",
		"NEIGHBORFIT_LOG_FORMAT",
		"NEIGHBORFIT_WEIGHTS_BUDGET",
		"NEIGHBORFIT_WEIGHTS_LIFESTYLE",
		"NEIGHBORFIT_WEIGHTS_LOCATION",
		"NEIGHBORFIT_WEIGHTS_AMENITIES",
		"NEIGHBORFIT_WEIGHTS_SAFETY",
		"NEIGHBORFIT_METRICS_NAMESPACE",
		"NEIGHBORFIT_METRICS_LABELS_ENV",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "neighborfit-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
