package metrics

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given a manager built with options", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test_ns"),
			WithSubsystem("test_sub"),
			WithMetricPrefix("x_"),
			WithHistogramBuckets([]float64{1, 5, 10}),
			WithCustomLabels(map[string]string{"env": "test"}),
			WithPrometheusRegistry(registry),
		)

		Convey("Then metric names carry namespace, subsystem and prefix", func() {
			m.rankingsTotal.Inc()
			families, err := registry.Gather()
			So(err, ShouldBeNil)

			var found bool
			for _, f := range families {
				if f.GetName() == "test_ns_test_sub_x_rankings_total" {
					found = true
					So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
				}
			}
			So(found, ShouldBeTrue)
		})

		Convey("And histograms use the configured buckets", func() {
			So(m.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
		})
	})

	Convey("Given empty option values", t, func() {
		m := NewManager(
			WithNamespace(""),
			WithSubsystem(""),
			WithMetricPrefix(""),
			WithHistogramBuckets(nil),
			WithCustomLabels(nil),
			WithPrometheusRegistry(prometheus.NewRegistry()),
		)

		Convey("Then defaults are kept", func() {
			So(m.namespace, ShouldEqual, "neighborfit")
			So(m.subsystem, ShouldEqual, "matching")
			So(m.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			So(m.customLabels, ShouldNotBeNil)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording a ranking", func() {
			rankings := testutil.ToFloat64(globalManager.rankingsTotal)
			scored := testutil.ToFloat64(globalManager.neighborhoodsScored)

			RecordRanking(12, 3.5)

			Convey("Then the ranking and scored counters advance", func() {
				So(testutil.ToFloat64(globalManager.rankingsTotal), ShouldEqual, rankings+1)
				So(testutil.ToFloat64(globalManager.neighborhoodsScored), ShouldEqual, scored+12)
			})
		})

		Convey("When recording an analysis", func() {
			before := testutil.ToFloat64(globalManager.analysesTotal)
			RecordAnalysis()
			So(testutil.ToFloat64(globalManager.analysesTotal), ShouldEqual, before+1)
		})

		Convey("When recording failures", func() {
			input := testutil.ToFloat64(globalManager.inputErrors)
			failures := testutil.ToFloat64(globalManager.rankingFailures)
			RecordInputError()
			RecordRankingFailure()
			So(testutil.ToFloat64(globalManager.inputErrors), ShouldEqual, input+1)
			So(testutil.ToFloat64(globalManager.rankingFailures), ShouldEqual, failures+1)
		})

		Convey("When updating gauges", func() {
			UpdateWorkerCount(8)
			UpdateNeighborhoodsTotal(42)
			UpdateProfilesTotal(3)
			UpdateMatchSetsTotal(2)

			Convey("Then they hold the latest value", func() {
				So(testutil.ToFloat64(globalManager.workerCount), ShouldEqual, 8)
				So(testutil.ToFloat64(globalManager.neighborhoodsTotal), ShouldEqual, 42)
				So(testutil.ToFloat64(globalManager.profilesTotal), ShouldEqual, 3)
				So(testutil.ToFloat64(globalManager.matchSetsTotal), ShouldEqual, 2)
			})
		})

		Convey("When counting interactions", func() {
			before := testutil.ToFloat64(globalManager.matchInteractions.WithLabelValues("saved"))
			RecordMatchInteraction("saved")
			So(testutil.ToFloat64(globalManager.matchInteractions.WithLabelValues("saved")), ShouldEqual, before+1)
		})

		Convey("When recording HTTP and error metrics", func() {
			before := testutil.ToFloat64(globalManager.httpRequests.WithLabelValues("/stats", "GET", "200"))

			So(func() {
				RecordHTTPRequest("/stats", "GET", "200")
				RecordHTTPRequestDuration("/stats", "GET", "200", 1.5)
				RecordErrorByComponent("repository", "not_found")
				RecordErrorByType("not_found", "medium")
				RecordErrorByEndpoint("/matches", "GET", "not_found")
				RecordErrorLatency("http", "not_found", 2)
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.httpRequests.WithLabelValues("/stats", "GET", "200")), ShouldEqual, before+1)
		})

		Convey("When observing histograms", func() {
			So(func() {
				RecordMatchCompatibility(81)
				RecordRepositoryQueryLatency(0.2)
				RecordRepositoryUpdateLatency(0.4)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent writers", t, func() {
		before := testutil.ToFloat64(globalManager.analysesTotal)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					RecordAnalysis()
					RecordMatchCompatibility(j)
				}
			}()
		}
		wg.Wait()

		Convey("Then no increment is lost", func() {
			So(testutil.ToFloat64(globalManager.analysesTotal), ShouldEqual, before+1000)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		RecordRanking(1, 1)
		families, err := GetRegistry().Gather()

		Convey("Then it exposes neighborfit metrics only", func() {
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "neighborfit_matching_"), ShouldBeTrue)
			}
		})
	})
}

func TestInit(t *testing.T) {
	Convey("Given the global manager rebuilt with a namespace and labels", t, func() {
		previous := GetRegistry()
		Init(WithNamespace("homes"), WithCustomLabels(map[string]string{"region": "eu"}))
		defer Init()

		RecordRanking(3, 2)
		families, err := GetRegistry().Gather()

		Convey("Then the registry is replaced and metrics carry the new names", func() {
			So(err, ShouldBeNil)
			So(GetRegistry(), ShouldNotPointTo, previous)
			So(families, ShouldNotBeEmpty)
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "homes_matching_"), ShouldBeTrue)
				So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "region")
			}
			So(testutil.ToFloat64(globalManager.rankingsTotal), ShouldEqual, 1)
		})
	})
}
