// Package scoring computes how well a neighborhood fits a preference profile.
//
// Every category score is a pure function of one neighborhood and one profile.
// Factors whose inputs are unknown are left out of their average; a category
// with no applicable factor scores 0.
package scoring

import (
	"math"
	"runtime"

	"github.com/okian/neighborfit/internal/domain/model"
)

// Default scoring configuration constants.
const (
	defaultConcurrencyMultiplier = 2
	percentScale                 = 100
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights sets the category weights. Invalid weight sets are ignored;
// callers that need to surface the problem should call Weights.Validate first.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		if w.Validate() == nil {
			s.weights = w
		}
	}
}

// WithConcurrency bounds how many goroutines score a batch in parallel.
func WithConcurrency(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// Breakdown is the full result of scoring one neighborhood.
type Breakdown struct {
	Scores   model.Scores
	Coverage Coverage
}

// Coverage counts how many factors contributed to each category.
type Coverage struct {
	Budget    int `json:"budget"`
	Lifestyle int `json:"lifestyle"`
	Location  int `json:"location"`
	Amenities int `json:"amenities"`
	Safety    int `json:"safety"`
}

// Complete reports whether every category had at least one factor.
func (c Coverage) Complete() bool {
	return c.Budget > 0 && c.Lifestyle > 0 && c.Location > 0 && c.Amenities > 0 && c.Safety > 0
}

// Scorer combines the category scores with a fixed set of weights.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	weights     Weights
	concurrency int
}

// New creates a Scorer with the default weights.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		weights:     DefaultWeights(),
		concurrency: runtime.NumCPU() * defaultConcurrencyMultiplier,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights returns the weights in use.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes all five categories and their weighted total.
// No category is skipped, so the breakdown is always fully populated.
func (s *Scorer) Score(n *model.Neighborhood, p *model.PreferenceProfile) Breakdown {
	budget := budgetFactors(n, p)
	lifestyle := lifestyleFactors(n, p)
	location := locationFactors(n, p)
	amenities := amenityFactors(n, p)
	safety := safetyFactors(n, p)

	scores := model.Scores{
		Budget:    budget.value(),
		Lifestyle: lifestyle.value(),
		Location:  location.value(),
		Amenities: amenities.value(),
		Safety:    safety.value(),
	}
	scores.Total = s.weights.Combine(scores)

	return Breakdown{
		Scores: scores,
		Coverage: Coverage{
			Budget:    budget.count,
			Lifestyle: lifestyle.count,
			Location:  location.count,
			Amenities: amenities.count,
			Safety:    safety.count,
		},
	}
}

// Compatibility converts a total in [0,1] to a whole percentage.
func Compatibility(total float64) int {
	return int(math.Round(clamp01(total) * percentScale))
}
