package scoring_test

import (
	"errors"
	"testing"

	"github.com/okian/neighborfit/internal/domain/model"
	scoring "github.com/okian/neighborfit/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecommendations(t *testing.T) {
	Convey("Given mixed category scores", t, func() {
		s := model.Scores{Budget: 0.4, Lifestyle: 0.7, Location: 0.3, Amenities: 0.9, Safety: 0.2}

		Convey("Then advice is given for budget, location and safety in that order", func() {
			So(scoring.Recommendations(s), ShouldResemble, []string{
				scoring.AdviceBudget,
				scoring.AdviceLocation,
				scoring.AdviceSafety,
			})
		})
	})

	Convey("Given strong scores", t, func() {
		s := model.Scores{Budget: 0.5, Lifestyle: 0.5, Location: 0.9, Amenities: 0.6, Safety: 1}

		Convey("Then no advice is given", func() {
			So(scoring.Recommendations(s), ShouldBeEmpty)
		})
	})

	Convey("Given all weak scores", t, func() {
		Convey("Then all five pieces of advice are given", func() {
			So(scoring.Recommendations(model.Scores{}), ShouldHaveLength, 5)
		})
	})
}

func TestScorer_Analyze(t *testing.T) {
	Convey("Given a scorer", t, func() {
		s := scoring.New()

		Convey("When analyzing a neighborhood", func() {
			a, err := s.Analyze(fullProfile(), fullNeighborhood())

			Convey("Then the analysis is consistent with Score", func() {
				So(err, ShouldBeNil)
				b := s.Score(fullNeighborhood(), fullProfile())
				So(a.Scores, ShouldResemble, b.Scores)
				So(a.Factors, ShouldResemble, b.Coverage)
				So(a.Compatibility, ShouldEqual, scoring.Compatibility(b.Scores.Total))
				So(a.Quality, ShouldResemble, model.QualityOf(a.Compatibility))
				So(a.Weights, ShouldResemble, scoring.DefaultWeights())
				So(a.Recommendations, ShouldResemble, scoring.Recommendations(b.Scores))
				So(a.Neighborhood.ID, ShouldEqual, "n-1")
			})
		})

		Convey("When the profile is missing", func() {
			_, err := s.Analyze(nil, fullNeighborhood())
			So(errors.Is(err, scoring.ErrInput), ShouldBeTrue)
		})

		Convey("When the neighborhood is missing", func() {
			_, err := s.Analyze(fullProfile(), nil)
			var inputErr *scoring.InputError
			So(errors.As(err, &inputErr), ShouldBeTrue)
			So(inputErr.Field, ShouldEqual, "neighborhood")
		})
	})
}
