// Package model contains domain models passed between layers.
package model

import (
	"sort"
	"strings"
	"time"
)

// Importance values live on a 1..10 scale. Zero means the user did not state one.
const (
	MinImportance = 1
	MaxImportance = 10

	defaultTopPriorities = 3
)

// PreferenceProfile captures what a user looks for in a neighborhood.
// Numeric fields use zero as "not set".
type PreferenceProfile struct {
	UserID         string                    `json:"user_id"`
	Budget         BudgetPreferences         `json:"budget"`
	Location       LocationPreferences       `json:"location"`
	Lifestyle      LifestylePreferences      `json:"lifestyle"`
	Amenities      AmenityPreferences        `json:"amenities"`
	Transportation TransportationPreferences `json:"transportation"`
	Demographics   DemographicPreferences    `json:"demographics"`
	Additional     AdditionalPreferences     `json:"additional"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
}

// BudgetPreferences bounds what the user is willing to pay.
type BudgetPreferences struct {
	MinHomePrice float64 `json:"min_home_price,omitempty" validate:"gte=0"`
	MaxHomePrice float64 `json:"max_home_price,omitempty" validate:"gte=0"`
	MinRent      float64 `json:"min_rent,omitempty" validate:"gte=0"`
	MaxRent      float64 `json:"max_rent,omitempty" validate:"gte=0"`
}

// LocationPreferences lists acceptable places and settlement types.
// The Prefer* flags are independent; several may be set at once.
type LocationPreferences struct {
	PreferredCities []string `json:"preferred_cities,omitempty" validate:"dive,required"`
	PreferredStates []string `json:"preferred_states,omitempty" validate:"dive,required"`
	MaxCommuteTime  float64  `json:"max_commute_time,omitempty" validate:"gte=0"`
	PreferUrban     bool     `json:"prefer_urban"`
	PreferSuburban  bool     `json:"prefer_suburban"`
	PreferRural     bool     `json:"prefer_rural"`
}

// AnyDensity reports whether at least one settlement type is preferred.
func (l LocationPreferences) AnyDensity() bool {
	return l.PreferUrban || l.PreferSuburban || l.PreferRural
}

// LifestylePreferences holds 1..10 importance weights.
type LifestylePreferences struct {
	SafetyImportance         int `json:"safety_importance,omitempty" validate:"omitempty,min=1,max=10"`
	EducationImportance      int `json:"education_importance,omitempty" validate:"omitempty,min=1,max=10"`
	WalkabilityImportance    int `json:"walkability_importance,omitempty" validate:"omitempty,min=1,max=10"`
	NightlifeImportance      int `json:"nightlife_importance,omitempty" validate:"omitempty,min=1,max=10"`
	FamilyFriendlyImportance int `json:"family_friendly_importance,omitempty" validate:"omitempty,min=1,max=10"`
	DiversityImportance      int `json:"diversity_importance,omitempty" validate:"omitempty,min=1,max=10"`
}

// Importances lists the lifestyle weights in declaration order.
func (l LifestylePreferences) Importances() []Importance {
	return []Importance{
		{Name: "safety", Value: l.SafetyImportance},
		{Name: "education", Value: l.EducationImportance},
		{Name: "walkability", Value: l.WalkabilityImportance},
		{Name: "nightlife", Value: l.NightlifeImportance},
		{Name: "familyFriendly", Value: l.FamilyFriendlyImportance},
		{Name: "diversity", Value: l.DiversityImportance},
	}
}

// AmenityPreferences holds 1..10 importance weights.
type AmenityPreferences struct {
	RestaurantsImportance   int `json:"restaurants_importance,omitempty" validate:"omitempty,min=1,max=10"`
	GroceryStoresImportance int `json:"grocery_stores_importance,omitempty" validate:"omitempty,min=1,max=10"`
	ParksImportance         int `json:"parks_importance,omitempty" validate:"omitempty,min=1,max=10"`
	HospitalsImportance     int `json:"hospitals_importance,omitempty" validate:"omitempty,min=1,max=10"`
	ShoppingImportance      int `json:"shopping_importance,omitempty" validate:"omitempty,min=1,max=10"`
}

// Importances lists the amenity weights in declaration order.
func (a AmenityPreferences) Importances() []Importance {
	return []Importance{
		{Name: "restaurants", Value: a.RestaurantsImportance},
		{Name: "groceryStores", Value: a.GroceryStoresImportance},
		{Name: "parks", Value: a.ParksImportance},
		{Name: "hospitals", Value: a.HospitalsImportance},
		{Name: "shopping", Value: a.ShoppingImportance},
	}
}

// TransportationPreferences holds 1..10 importance weights.
type TransportationPreferences struct {
	PublicTransitImportance int `json:"public_transit_importance,omitempty" validate:"omitempty,min=1,max=10"`
	BikeFriendlyImportance  int `json:"bike_friendly_importance,omitempty" validate:"omitempty,min=1,max=10"`
	CarDependency           int `json:"car_dependency,omitempty" validate:"omitempty,min=1,max=10"`
}

// Importances lists the transportation weights in declaration order.
func (t TransportationPreferences) Importances() []Importance {
	return []Importance{
		{Name: "publicTransit", Value: t.PublicTransitImportance},
		{Name: "bikeFriendly", Value: t.BikeFriendlyImportance},
		{Name: "carDependency", Value: t.CarDependency},
	}
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Distance returns how far v is from the nearest bound.
func (r Range) Distance(v float64) float64 {
	lo := v - r.Min
	if lo < 0 {
		lo = -lo
	}
	hi := v - r.Max
	if hi < 0 {
		hi = -hi
	}
	if lo < hi {
		return lo
	}
	return hi
}

// DemographicPreferences describes the preferred population.
type DemographicPreferences struct {
	PreferredAgeRange        *Range `json:"preferred_age_range,omitempty"`
	PreferredIncomeRange     *Range `json:"preferred_income_range,omitempty"`
	EducationLevelImportance int    `json:"education_level_importance,omitempty" validate:"omitempty,min=1,max=10"`
}

// AdditionalPreferences are informational and not used for scoring.
type AdditionalPreferences struct {
	PetFriendly       bool `json:"pet_friendly"`
	QuietNeighborhood bool `json:"quiet_neighborhood"`
	CommunityEvents   bool `json:"community_events"`
	OutdoorActivities bool `json:"outdoor_activities"`
	CulturalDiversity bool `json:"cultural_diversity"`
}

// Importance is a named 1..10 weight.
type Importance struct {
	Name  string
	Value int
}

// TopPriorities returns up to limit names with the highest importance.
// Unset values are skipped and ties keep their input order.
func TopPriorities(items []Importance, limit int) []string {
	present := make([]Importance, 0, len(items))
	for _, it := range items {
		if it.Value > 0 {
			present = append(present, it)
		}
	}
	sort.SliceStable(present, func(i, j int) bool { return present[i].Value > present[j].Value })
	if limit >= 0 && len(present) > limit {
		present = present[:limit]
	}
	out := make([]string, len(present))
	for i, it := range present {
		out[i] = it.Name
	}
	return out
}

// AverageImportance is the mean of the set importances, or 0 when none is set.
func AverageImportance(items []Importance) float64 {
	var sum, n int
	for _, it := range items {
		if it.Value > 0 {
			sum += it.Value
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// PriorityScore averages the importances that matter most for day-to-day living.
func (p *PreferenceProfile) PriorityScore() float64 {
	return AverageImportance([]Importance{
		{Name: "safety", Value: p.Lifestyle.SafetyImportance},
		{Name: "education", Value: p.Lifestyle.EducationImportance},
		{Name: "walkability", Value: p.Lifestyle.WalkabilityImportance},
		{Name: "familyFriendly", Value: p.Lifestyle.FamilyFriendlyImportance},
		{Name: "groceryStores", Value: p.Amenities.GroceryStoresImportance},
		{Name: "hospitals", Value: p.Amenities.HospitalsImportance},
	})
}

// PriorityGroup summarizes one group of importances.
type PriorityGroup struct {
	TopPriorities     []string `json:"top_priorities"`
	AverageImportance float64  `json:"average_importance"`
}

// PreferenceSummary is the compact view of a profile shown to the user.
type PreferenceSummary struct {
	UserID         string              `json:"user_id"`
	Budget         BudgetPreferences   `json:"budget"`
	Location       LocationPreferences `json:"location"`
	Lifestyle      PriorityGroup       `json:"lifestyle"`
	Amenities      PriorityGroup       `json:"amenities"`
	Transportation PriorityGroup       `json:"transportation"`
	PriorityScore  float64             `json:"priority_score"`
}

// Summary builds the PreferenceSummary for p.
func (p *PreferenceProfile) Summary() PreferenceSummary {
	group := func(items []Importance) PriorityGroup {
		return PriorityGroup{
			TopPriorities:     TopPriorities(items, defaultTopPriorities),
			AverageImportance: AverageImportance(items),
		}
	}
	return PreferenceSummary{
		UserID:         p.UserID,
		Budget:         p.Budget,
		Location:       p.Location,
		Lifestyle:      group(p.Lifestyle.Importances()),
		Amenities:      group(p.Amenities.Importances()),
		Transportation: group(p.Transportation.Importances()),
		PriorityScore:  p.PriorityScore(),
	}
}

// Normalize trims whitespace and drops blank entries from the location lists.
func (p *PreferenceProfile) Normalize() {
	p.Location.PreferredCities = trimAll(p.Location.PreferredCities)
	p.Location.PreferredStates = trimAll(p.Location.PreferredStates)
}

// Clone returns a deep copy of p.
func (p *PreferenceProfile) Clone() *PreferenceProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Location.PreferredCities = append([]string(nil), p.Location.PreferredCities...)
	c.Location.PreferredStates = append([]string(nil), p.Location.PreferredStates...)
	if r := p.Demographics.PreferredAgeRange; r != nil {
		rc := *r
		c.Demographics.PreferredAgeRange = &rc
	}
	if r := p.Demographics.PreferredIncomeRange; r != nil {
		rc := *r
		c.Demographics.PreferredIncomeRange = &rc
	}
	return &c
}

func trimAll(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
