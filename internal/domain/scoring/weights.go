package scoring

import (
	"fmt"
	"math"

	"github.com/okian/neighborfit/internal/domain/model"
)

const weightSumTolerance = 1e-9

// Weights sets how much each category contributes to the total.
// The five weights must be non-negative and sum to 1.
type Weights struct {
	Budget    float64 `json:"budget" koanf:"budget"`
	Lifestyle float64 `json:"lifestyle" koanf:"lifestyle"`
	Location  float64 `json:"location" koanf:"location"`
	Amenities float64 `json:"amenities" koanf:"amenities"`
	Safety    float64 `json:"safety" koanf:"safety"`
}

// DefaultWeights returns the standard category weights.
func DefaultWeights() Weights {
	return Weights{
		Budget:    0.30,
		Lifestyle: 0.25,
		Location:  0.20,
		Amenities: 0.15,
		Safety:    0.10,
	}
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.Budget + w.Lifestyle + w.Location + w.Amenities + w.Safety
}

// Validate checks the weights are usable.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"budget":    w.Budget,
		"lifestyle": w.Lifestyle,
		"location":  w.Location,
		"amenities": w.Amenities,
		"safety":    w.Safety,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s weight %v", ErrInvalidWeights, name, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1", ErrInvalidWeights, sum)
	}
	return nil
}

// Combine returns the weighted total of the category scores, clamped to [0,1].
func (w Weights) Combine(s model.Scores) float64 {
	total := s.Budget*w.Budget +
		s.Lifestyle*w.Lifestyle +
		s.Location*w.Location +
		s.Amenities*w.Amenities +
		s.Safety*w.Safety
	return clamp01(total)
}
