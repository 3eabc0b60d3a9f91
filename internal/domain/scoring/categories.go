package scoring

import (
	"math"
	"strings"

	"github.com/okian/neighborfit/internal/domain/model"
)

// Scoring constants.
const (
	ratingScale = 10.0

	withinBudgetSlope = 0.5
	overBudgetSlope   = 0.3
	costIndexCeiling  = 150.0

	partialPlaceCredit = 0.3

	urbanPopulation    = 50000.0
	suburbanPopulation = 10000.0

	restaurantsSaturation = 50.0
	grocerySaturation     = 10.0
	parksSaturation       = 5.0

	crimeRateCeiling = 100.0
	ageTolerance     = 20.0
	incomeTolerance  = 50000.0
)

// factors folds factor contributions into an average.
// For plain averages every factor has weight 1.
type factors struct {
	sum    float64
	weight float64
	count  int
}

func (f factors) add(v float64) factors {
	return f.addWeighted(v, 1)
}

func (f factors) addWeighted(v, w float64) factors {
	f.sum += v * w
	f.weight += w
	f.count++
	return f
}

func (f factors) value() float64 {
	if f.weight <= 0 {
		return 0
	}
	return clamp01(f.sum / f.weight)
}

// Budget scores price fit: home price, rent and cost of living.
func Budget(n *model.Neighborhood, p *model.PreferenceProfile) float64 {
	return budgetFactors(n, p).value()
}

// Lifestyle scores the importance-weighted character ratings.
func Lifestyle(n *model.Neighborhood, p *model.PreferenceProfile) float64 {
	return lifestyleFactors(n, p).value()
}

// Location scores preferred places and settlement type.
func Location(n *model.Neighborhood, p *model.PreferenceProfile) float64 {
	return locationFactors(n, p).value()
}

// Amenities scores the importance-weighted services and mobility options.
func Amenities(n *model.Neighborhood, p *model.PreferenceProfile) float64 {
	return amenityFactors(n, p).value()
}

// Safety scores crime data and demographic fit.
func Safety(n *model.Neighborhood, p *model.PreferenceProfile) float64 {
	return safetyFactors(n, p).value()
}

func budgetFactors(n *model.Neighborhood, p *model.PreferenceProfile) factors {
	var f factors
	if n == nil || p == nil {
		return f
	}
	if known(n.Housing.MedianHomePrice) && known(p.Budget.MaxHomePrice) {
		f = f.add(priceFit(n.Housing.MedianHomePrice / p.Budget.MaxHomePrice))
	}
	if known(n.Housing.MedianRent) && known(p.Budget.MaxRent) {
		f = f.add(priceFit(n.Housing.MedianRent / p.Budget.MaxRent))
	}
	if known(n.CostOfLiving.OverallIndex) {
		f = f.add(floor0(1 - n.CostOfLiving.OverallIndex/costIndexCeiling))
	}
	return f
}

// priceFit maps price/budget to [0,1]. Within budget the score falls from 1
// to 0.5; over budget it keeps falling on a gentler slope.
func priceFit(ratio float64) float64 {
	if ratio <= 1 {
		return floor0(1 - ratio*withinBudgetSlope)
	}
	return floor0(1 - (ratio-1)*overBudgetSlope)
}

func lifestyleFactors(n *model.Neighborhood, p *model.PreferenceProfile) factors {
	var f factors
	if n == nil || p == nil {
		return f
	}
	l := p.Lifestyle
	f = addRating(f, l.SafetyImportance, n.Safety.SafetyRating)
	f = addRating(f, l.EducationImportance, n.Education.SchoolRating)
	f = addRating(f, l.WalkabilityImportance, n.Transportation.WalkabilityScore)
	f = addRating(f, l.NightlifeImportance, n.Lifestyle.NightlifeScore)
	f = addRating(f, l.FamilyFriendlyImportance, n.Lifestyle.FamilyFriendlyScore)
	f = addRating(f, l.DiversityImportance, n.Lifestyle.DiversityScore)
	return f
}

func addRating(f factors, importance int, rating float64) factors {
	if importance <= 0 || !known(rating) {
		return f
	}
	return f.addWeighted(clamp01(rating/ratingScale), float64(importance))
}

func locationFactors(n *model.Neighborhood, p *model.PreferenceProfile) factors {
	var f factors
	if n == nil || p == nil {
		return f
	}
	loc := p.Location
	if wanted := nonBlank(loc.PreferredCities); len(wanted) > 0 {
		f = f.add(placeFit(n.City, wanted))
	}
	if wanted := nonBlank(loc.PreferredStates); len(wanted) > 0 {
		f = f.add(placeFit(n.State, wanted))
	}
	if loc.AnyDensity() && known(n.Demographics.TotalPopulation) {
		f = f.add(densityFit(Classify(n.Demographics.TotalPopulation), loc))
	}
	return f
}

// placeFit gives full credit when any wanted name appears in actual and
// partial credit otherwise. Matching ignores case.
func placeFit(actual string, wanted []string) float64 {
	actual = strings.ToLower(actual)
	for _, w := range wanted {
		if strings.Contains(actual, strings.ToLower(w)) {
			return 1
		}
	}
	return partialPlaceCredit
}

func densityFit(d Density, loc model.LocationPreferences) float64 {
	switch {
	case d == DensityUrban && loc.PreferUrban,
		d == DensitySuburban && loc.PreferSuburban,
		d == DensityRural && loc.PreferRural:
		return 1
	default:
		return 0
	}
}

// Density classifies a neighborhood by population.
type Density string

// Density classes.
const (
	DensityUnknown  Density = "unknown"
	DensityUrban    Density = "urban"
	DensitySuburban Density = "suburban"
	DensityRural    Density = "rural"
)

// Classify maps a population count to a density class.
// A non-positive population is unknown and matches no preference.
func Classify(population float64) Density {
	switch {
	case !known(population):
		return DensityUnknown
	case population > urbanPopulation:
		return DensityUrban
	case population > suburbanPopulation:
		return DensitySuburban
	default:
		return DensityRural
	}
}

func amenityFactors(n *model.Neighborhood, p *model.PreferenceProfile) factors {
	var f factors
	if n == nil || p == nil {
		return f
	}
	a, t := p.Amenities, p.Transportation
	f = addCount(f, a.RestaurantsImportance, n.Amenities.Restaurants, restaurantsSaturation)
	f = addCount(f, a.GroceryStoresImportance, n.Amenities.GroceryStores, grocerySaturation)
	f = addCount(f, a.ParksImportance, n.Amenities.Parks, parksSaturation)
	f = addRating(f, t.PublicTransitImportance, n.Transportation.PublicTransitScore)
	f = addRating(f, t.BikeFriendlyImportance, n.Transportation.BikeScore)
	return f
}

// addCount scores a count against the number at which more stops helping.
func addCount(f factors, importance int, count, saturation float64) factors {
	if importance <= 0 || !known(count) {
		return f
	}
	return f.addWeighted(clamp01(count/saturation), float64(importance))
}

func safetyFactors(n *model.Neighborhood, p *model.PreferenceProfile) factors {
	var f factors
	if n == nil {
		return f
	}
	if known(n.Safety.SafetyRating) {
		f = f.add(clamp01(n.Safety.SafetyRating / ratingScale))
	}
	if known(n.Safety.CrimeRate) {
		f = f.add(floor0(1 - n.Safety.CrimeRate/crimeRateCeiling))
	}
	if p == nil {
		return f
	}
	d := p.Demographics
	if d.PreferredAgeRange != nil && known(n.Demographics.MedianAge) {
		f = f.add(rangeFit(*d.PreferredAgeRange, n.Demographics.MedianAge, ageTolerance))
	}
	if d.PreferredIncomeRange != nil && known(n.Demographics.MedianIncome) {
		f = f.add(rangeFit(*d.PreferredIncomeRange, n.Demographics.MedianIncome, incomeTolerance))
	}
	return f
}

// rangeFit is 1 inside r and decays linearly to 0 at tolerance outside it.
func rangeFit(r model.Range, v, tolerance float64) float64 {
	if r.Contains(v) {
		return 1
	}
	return floor0(1 - r.Distance(v)/tolerance)
}

// known treats zero and negative values as missing data.
func known(v float64) bool {
	return v > 0
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func floor0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
