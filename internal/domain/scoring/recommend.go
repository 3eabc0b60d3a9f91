package scoring

import "github.com/okian/neighborfit/internal/domain/model"

// weakScore is the level below which a category earns a recommendation.
const weakScore = 0.5

// Advice shown for weak categories.
const (
	AdviceBudget    = "Consider neighborhoods with lower housing costs"
	AdviceLifestyle = "Look for areas that better match your lifestyle preferences"
	AdviceLocation  = "Expand your location preferences to find better matches"
	AdviceAmenities = "Consider areas with more amenities and better transportation"
	AdviceSafety    = "Prioritize neighborhoods with better safety ratings"
)

// Recommendations returns one piece of advice per weak category, in the order
// budget, lifestyle, location, amenities, safety. The total is ignored.
func Recommendations(s model.Scores) []string {
	out := []string{}
	for _, c := range []struct {
		score  float64
		advice string
	}{
		{s.Budget, AdviceBudget},
		{s.Lifestyle, AdviceLifestyle},
		{s.Location, AdviceLocation},
		{s.Amenities, AdviceAmenities},
		{s.Safety, AdviceSafety},
	} {
		if c.score < weakScore {
			out = append(out, c.advice)
		}
	}
	return out
}

// Analysis is the detailed view of one neighborhood for one profile.
type Analysis struct {
	Neighborhood    model.Neighborhood `json:"neighborhood"`
	Scores          model.Scores       `json:"scores"`
	Factors         Coverage           `json:"factors"`
	Weights         Weights            `json:"weights"`
	Compatibility   int                `json:"compatibility"`
	Quality         model.MatchQuality `json:"quality"`
	Recommendations []string           `json:"recommendations"`
}

// Analyze scores a single neighborhood and explains the result.
func (s *Scorer) Analyze(p *model.PreferenceProfile, n *model.Neighborhood) (Analysis, error) {
	if p == nil {
		return Analysis{}, &InputError{Field: "preferences"}
	}
	if n == nil {
		return Analysis{}, &InputError{Field: "neighborhood"}
	}
	b := s.Score(n, p)
	compat := Compatibility(b.Scores.Total)
	return Analysis{
		Neighborhood:    *n,
		Scores:          b.Scores,
		Factors:         b.Coverage,
		Weights:         s.weights,
		Compatibility:   compat,
		Quality:         model.QualityOf(compat),
		Recommendations: Recommendations(b.Scores),
	}, nil
}
