package config_test

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/okian/neighborfit/internal/config"
	"github.com/okian/neighborfit/internal/domain/scoring"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DefaultListLimit, convey.ShouldEqual, 20)
			convey.So(cfg.SeedFile, convey.ShouldEqual, "data/neighborhoods.json")
			convey.So(cfg.JSONLogs(), convey.ShouldBeFalse)
			convey.So(cfg.Metrics.Namespace, convey.ShouldEqual, "neighborfit")
			convey.So(cfg.Metrics.Subsystem, convey.ShouldEqual, "matching")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given invalid configs", t, func() {
		cases := map[string]func(c *config.Config){
			"zero workers":           func(c *config.Config) { c.WorkerCount = 0 },
			"zero default limit":     func(c *config.Config) { c.DefaultMatchLimit = 0 },
			"max below default":      func(c *config.Config) { c.MaxMatchLimit = 5 },
			"zero list limit":        func(c *config.Config) { c.DefaultListLimit = 0 },
			"negative timeout":       func(c *config.Config) { c.RankingTimeoutMS = -1 },
			"unknown log format":     func(c *config.Config) { c.LogFormat = "xml" },
			"blank addr":             func(c *config.Config) { c.Addr = "  " },
			"negative weight":        func(c *config.Config) { c.Weights = scoring.Weights{Budget: 1.1, Safety: -0.1} },
			"weights not normalized": func(c *config.Config) { c.Weights = scoring.Weights{Budget: 0.5} },
			"metric namespace":       func(c *config.Config) { c.Metrics.Namespace = "neighbor-fit" },
			"metric prefix":          func(c *config.Config) { c.Metrics.Prefix = "1x_" },
			"unsorted buckets":       func(c *config.Config) { c.Metrics.Buckets = []float64{5, 1} },
			"duplicate buckets":      func(c *config.Config) { c.Metrics.Buckets = []float64{1, 1, 5} },
			"reserved label":         func(c *config.Config) { c.Metrics.Labels = map[string]string{"__name": "x"} },
		}

		for name, mutate := range cases {
			cfg := config.New(context.Background())
			mutate(cfg)

			convey.Convey("Then "+name+" is rejected", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
