package loadtest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/neighborfit/internal/adapters/http/api"
	service "github.com/okian/neighborfit/internal/app"
	"github.com/okian/neighborfit/internal/domain/model"
	"github.com/okian/neighborfit/internal/domain/scoring"
	"github.com/okian/neighborfit/internal/validation"
	"github.com/okian/neighborfit/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newTestServer() (*httptest.Server, *service.Service) {
	svc := service.New(
		service.WithWorkerCount(2),
		service.WithSeedFile("../../data/neighborhoods.json"),
		service.WithLogger(logger.Nop()),
	)
	So(svc.Start(context.Background()), ShouldBeNil)
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(mux)
	return httptest.NewServer(mux), svc
}

func TestGenerateProfile(t *testing.T) {
	Convey("Given generated profiles", t, func() {
		Convey("Then every one passes request validation", func() {
			for i := 0; i < 200; i++ {
				p := generateProfile()
				So(validation.ValidateStruct(p), ShouldBeNil)
			}
		})

		Convey("And user IDs are unique", func() {
			stats := &Stats{}
			users, err := generateProfiles(context.Background(), &Config{Users: 50}, stats)
			So(err, ShouldBeNil)
			So(stats.ProfilesGenerated, ShouldEqual, 50)
			seen := map[string]bool{}
			for _, u := range users {
				So(seen[u.UserID], ShouldBeFalse)
				seen[u.UserID] = true
			}
		})
	})
}

func TestVerifyRanking(t *testing.T) {
	Convey("Given ranked results", t, func() {
		good := []model.MatchResult{
			{ID: "a", Rank: 1, Compatibility: 80, Quality: model.QualityOf(80), Scores: model.Scores{Total: 0.8}},
			{ID: "b", Rank: 2, Compatibility: 80, Quality: model.QualityOf(80), Scores: model.Scores{Total: 0.8}},
			{ID: "c", Rank: 3, Compatibility: 41, Scores: model.Scores{Total: 0.41}},
		}

		Convey("When they are ordered and in range", func() {
			Convey("Then they verify", func() {
				So(verifyRanking(good, 3), ShouldBeNil)
				So(verifyRanking(nil, 3), ShouldBeNil)
			})
		})

		Convey("When they break a rule", func() {
			tooMany := verifyRanking(good, 2)

			outOfOrder := append([]model.MatchResult(nil), good...)
			outOfOrder[2].Scores.Total = 0.9

			badRank := append([]model.MatchResult(nil), good...)
			badRank[1].Rank = 3

			badScore := append([]model.MatchResult(nil), good...)
			badScore[0].Scores.Safety = 1.5

			badQuality := append([]model.MatchResult(nil), good...)
			badQuality[2].Quality = model.MatchQuality{Acceptable: true}

			Convey("Then each is reported as a violation", func() {
				So(errors.Is(tooMany, ErrRankingViolation), ShouldBeTrue)
				So(errors.Is(verifyRanking(outOfOrder, 0), ErrRankingViolation), ShouldBeTrue)
				So(errors.Is(verifyRanking(badRank, 0), ErrRankingViolation), ShouldBeTrue)
				So(errors.Is(verifyRanking(badScore, 0), ErrRankingViolation), ShouldBeTrue)
				So(errors.Is(verifyRanking(badQuality, 0), ErrRankingViolation), ShouldBeTrue)
			})
		})
	})
}

func TestVerifyAlgorithm(t *testing.T) {
	Convey("Given calculate metadata", t, func() {
		Convey("Then a complete run verifies", func() {
			So(verifyAlgorithm(&scoring.Algorithm{TotalNeighborhoods: 6, ProcessedNeighborhoods: 6}), ShouldBeNil)
		})

		Convey("And a missing block or a partial run is a violation", func() {
			So(errors.Is(verifyAlgorithm(nil), ErrRankingViolation), ShouldBeTrue)
			So(errors.Is(verifyAlgorithm(&scoring.Algorithm{TotalNeighborhoods: 6, ProcessedNeighborhoods: 5}), ErrRankingViolation), ShouldBeTrue)
		})
	})
}

func TestRunPool(t *testing.T) {
	Convey("Given a worker pool", t, func() {
		Convey("When some calls fail", func() {
			ok, failed := runPool(context.Background(), 4, 10, func(_ context.Context, i int) error {
				if i%3 == 0 {
					return errors.New("boom")
				}
				return nil
			})

			Convey("Then successes and failures are counted", func() {
				So(ok, ShouldEqual, 6)
				So(failed, ShouldEqual, 4)
			})
		})

		Convey("When no workers are requested", func() {
			done := make(chan [2]int, 1)
			go func() {
				ok, failed := runPool(context.Background(), 0, 3, func(context.Context, int) error { return nil })
				done <- [2]int{ok, failed}
			}()

			Convey("Then one worker still runs every call", func() {
				select {
				case got := <-done:
					So(got, ShouldResemble, [2]int{3, 0})
				case <-time.After(5 * time.Second):
					t.Fatal("runPool did not return")
				}
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			ok, failed := runPool(ctx, 2, 5, func(context.Context, int) error { return nil })

			Convey("Then nothing runs", func() {
				So(ok, ShouldEqual, 0)
				So(failed, ShouldEqual, 5)
			})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running neighborfit server", t, func() {
		srv, svc := newTestServer()
		defer srv.Close()
		defer svc.Stop()

		Convey("When running a small load test", func() {
			out := filepath.Join(t.TempDir(), "profiles.json")
			stats, err := Run(context.Background(), &Config{
				BaseURL:    srv.URL,
				Users:      25,
				Limit:      3,
				Workers:    4,
				Timeout:    5 * time.Second,
				OutputFile: out,
			})

			Convey("Then every profile is stored and every ranking verifies", func() {
				So(err, ShouldBeNil)
				So(stats.ProfilesStored, ShouldEqual, 25)
				So(stats.RankingsRetrieved, ShouldEqual, 25)
				So(stats.Violations, ShouldEqual, 0)
				So(svc.GetStats()["profiles"], ShouldEqual, 25)
			})

			Convey("And the generated profiles are written out", func() {
				data, err := os.ReadFile(out)
				So(err, ShouldBeNil)
				var users []userProfile
				So(json.Unmarshal(data, &users), ShouldBeNil)
				So(len(users), ShouldEqual, 25)
			})
		})

		Convey("When the worker count is zero", func() {
			stats, err := Run(context.Background(), &Config{
				BaseURL: srv.URL,
				Users:   3,
				Limit:   2,
				Timeout: 5 * time.Second,
			})

			Convey("Then the run still completes", func() {
				So(err, ShouldBeNil)
				So(stats.RankingsRetrieved, ShouldEqual, 3)
			})
		})

		Convey("When the server is unreachable", func() {
			_, err := Run(context.Background(), &Config{
				BaseURL: "http://127.0.0.1:1",
				Users:   1,
				Workers: 1,
				Timeout: time.Second,
			})

			Convey("Then the health check fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "health check")
			})
		})
	})
}
