package model_test

import (
	"testing"

	"github.com/okian/neighborfit/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTopPriorities(t *testing.T) {
	Convey("Given a set of importances", t, func() {
		items := []model.Importance{
			{Name: "safety", Value: 8},
			{Name: "education", Value: 9},
			{Name: "walkability", Value: 0},
			{Name: "nightlife", Value: 8},
			{Name: "diversity", Value: 3},
		}

		Convey("Then the highest set values come first and ties keep order", func() {
			So(model.TopPriorities(items, 3), ShouldResemble, []string{"education", "safety", "nightlife"})
		})

		Convey("And unset values are never returned", func() {
			So(model.TopPriorities(items, 10), ShouldNotContain, "walkability")
			So(model.TopPriorities(items, 10), ShouldHaveLength, 4)
		})
	})
}

func TestAverageImportance(t *testing.T) {
	Convey("Given importances with gaps", t, func() {
		items := []model.Importance{{Value: 4}, {Value: 0}, {Value: 8}}

		Convey("Then only set values are averaged", func() {
			So(model.AverageImportance(items), ShouldEqual, 6)
		})
	})

	Convey("Given no set importances", t, func() {
		So(model.AverageImportance([]model.Importance{{Value: 0}}), ShouldEqual, 0)
		So(model.AverageImportance(nil), ShouldEqual, 0)
	})
}

func TestPreferenceProfile_Summary(t *testing.T) {
	Convey("Given a profile", t, func() {
		p := &model.PreferenceProfile{
			UserID: "user-1",
			Lifestyle: model.LifestylePreferences{
				SafetyImportance:         10,
				EducationImportance:      6,
				WalkabilityImportance:    4,
				FamilyFriendlyImportance: 8,
			},
			Amenities: model.AmenityPreferences{
				GroceryStoresImportance: 6,
				HospitalsImportance:     2,
			},
			Transportation: model.TransportationPreferences{BikeFriendlyImportance: 7},
		}

		Convey("When summarizing", func() {
			s := p.Summary()

			Convey("Then each group lists its top priorities", func() {
				So(s.UserID, ShouldEqual, "user-1")
				So(s.Lifestyle.TopPriorities, ShouldResemble, []string{"safety", "familyFriendly", "education"})
				So(s.Lifestyle.AverageImportance, ShouldEqual, 7)
				So(s.Amenities.TopPriorities, ShouldResemble, []string{"groceryStores", "hospitals"})
				So(s.Transportation.TopPriorities, ShouldResemble, []string{"bikeFriendly"})
			})

			Convey("And the priority score averages the everyday importances", func() {
				// (10 + 6 + 4 + 8 + 6 + 2) / 6
				So(s.PriorityScore, ShouldEqual, 6)
			})
		})
	})
}

func TestPreferenceProfile_Normalize(t *testing.T) {
	Convey("Given padded and blank location entries", t, func() {
		cities := []string{" Austin ", "", "  "}
		p := &model.PreferenceProfile{Location: model.LocationPreferences{
			PreferredCities: cities,
			PreferredStates: []string{"TX"},
		}}
		p.Normalize()

		Convey("Then entries are trimmed and blanks dropped", func() {
			So(p.Location.PreferredCities, ShouldResemble, []string{"Austin"})
			So(p.Location.PreferredStates, ShouldResemble, []string{"TX"})
		})

		Convey("And the caller's slice is not rewritten", func() {
			So(cities[0], ShouldEqual, " Austin ")
		})
	})
}

func TestPreferenceProfile_Clone(t *testing.T) {
	Convey("Given a profile with lists and ranges", t, func() {
		p := &model.PreferenceProfile{
			UserID:       "user-1",
			Location:     model.LocationPreferences{PreferredCities: []string{"Austin"}},
			Demographics: model.DemographicPreferences{PreferredAgeRange: &model.Range{Min: 25, Max: 35}},
		}

		Convey("When the clone is modified", func() {
			c := p.Clone()
			c.Location.PreferredCities[0] = "Dallas"
			c.Demographics.PreferredAgeRange.Max = 60

			Convey("Then the original is unchanged", func() {
				So(p.Location.PreferredCities[0], ShouldEqual, "Austin")
				So(p.Demographics.PreferredAgeRange.Max, ShouldEqual, 35)
				So(c.UserID, ShouldEqual, "user-1")
			})
		})
	})

	Convey("Given a nil profile", t, func() {
		var p *model.PreferenceProfile
		So(p.Clone(), ShouldBeNil)
	})
}

func TestRange(t *testing.T) {
	Convey("Given an age range", t, func() {
		r := model.Range{Min: 25, Max: 35}

		So(r.Contains(25), ShouldBeTrue)
		So(r.Contains(35), ShouldBeTrue)
		So(r.Contains(36), ShouldBeFalse)
		So(r.Distance(20), ShouldEqual, 5)
		So(r.Distance(41), ShouldEqual, 6)
	})
}

func TestNeighborhood_OverallScore(t *testing.T) {
	Convey("Given a neighborhood with some ratings", t, func() {
		n := &model.Neighborhood{
			ID:             "n-1",
			Name:           "Midtown",
			Safety:         model.NeighborhoodSafety{SafetyRating: 8},
			Transportation: model.NeighborhoodTransport{WalkabilityScore: 6},
		}

		Convey("Then only known ratings are averaged", func() {
			So(n.OverallScore(), ShouldEqual, 7)
		})

		Convey("And the summary carries the overall score", func() {
			s := n.Summary()
			So(s.ID, ShouldEqual, "n-1")
			So(s.OverallScore, ShouldEqual, 7)
			So(s.SafetyRating, ShouldEqual, 8)
		})
	})

	Convey("Given a neighborhood without ratings", t, func() {
		So((&model.Neighborhood{}).OverallScore(), ShouldEqual, 0)
	})
}

func TestInteraction_Valid(t *testing.T) {
	Convey("Given interaction values", t, func() {
		So(model.InteractionSaved.Valid(), ShouldBeTrue)
		So(model.InteractionNone.Valid(), ShouldBeTrue)
		So(model.Interaction("shared").Valid(), ShouldBeFalse)
	})
}

func TestQualityOf(t *testing.T) {
	Convey("Given compatibility percentages around each tier", t, func() {
		Convey("Then 90 and above is a perfect, good and acceptable match", func() {
			So(model.QualityOf(90), ShouldResemble, model.MatchQuality{Perfect: true, Good: true, Acceptable: true})
			So(model.QualityOf(100), ShouldResemble, model.MatchQuality{Perfect: true, Good: true, Acceptable: true})
		})

		Convey("And 75 to 89 is good and acceptable", func() {
			So(model.QualityOf(89), ShouldResemble, model.MatchQuality{Good: true, Acceptable: true})
			So(model.QualityOf(75), ShouldResemble, model.MatchQuality{Good: true, Acceptable: true})
		})

		Convey("And 60 to 74 is only acceptable", func() {
			So(model.QualityOf(74), ShouldResemble, model.MatchQuality{Acceptable: true})
			So(model.QualityOf(60), ShouldResemble, model.MatchQuality{Acceptable: true})
		})

		Convey("And below 60 reaches no tier", func() {
			So(model.QualityOf(59), ShouldResemble, model.MatchQuality{})
			So(model.QualityOf(0), ShouldResemble, model.MatchQuality{})
		})
	})
}
