package model

// Neighborhood is read-only reference data about one area.
// Every numeric field uses zero for "unknown".
type Neighborhood struct {
	ID             string                   `json:"id"`
	Name           string                   `json:"name"`
	City           string                   `json:"city"`
	State          string                   `json:"state"`
	ZipCode        string                   `json:"zip_code,omitempty"`
	Description    string                   `json:"description,omitempty"`
	Coordinates    Coordinates              `json:"coordinates"`
	Demographics   NeighborhoodDemographics `json:"demographics"`
	Safety         NeighborhoodSafety       `json:"safety"`
	Housing        NeighborhoodHousing      `json:"housing"`
	Education      NeighborhoodEducation    `json:"education"`
	Transportation NeighborhoodTransport    `json:"transportation"`
	Amenities      NeighborhoodAmenities    `json:"amenities"`
	Lifestyle      NeighborhoodLifestyle    `json:"lifestyle"`
	CostOfLiving   CostOfLiving             `json:"cost_of_living"`
}

// Coordinates is a WGS84 position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NeighborhoodDemographics describes who lives there.
type NeighborhoodDemographics struct {
	TotalPopulation  float64 `json:"total_population,omitempty"`
	MedianAge        float64 `json:"median_age,omitempty"`
	MedianIncome     float64 `json:"median_income,omitempty"`
	EducationLevel   string  `json:"education_level,omitempty"`
	FamilyHouseholds float64 `json:"family_households,omitempty"`
}

// NeighborhoodSafety holds crime statistics.
type NeighborhoodSafety struct {
	CrimeRate      float64 `json:"crime_rate,omitempty"`
	SafetyRating   float64 `json:"safety_rating,omitempty"`
	PoliceStations float64 `json:"police_stations,omitempty"`
}

// NeighborhoodHousing holds price levels.
type NeighborhoodHousing struct {
	MedianHomePrice   float64 `json:"median_home_price,omitempty"`
	MedianRent        float64 `json:"median_rent,omitempty"`
	HomeOwnershipRate float64 `json:"home_ownership_rate,omitempty"`
}

// NeighborhoodEducation holds school data.
type NeighborhoodEducation struct {
	SchoolRating       float64 `json:"school_rating,omitempty"`
	SchoolsNearby      float64 `json:"schools_nearby,omitempty"`
	UniversitiesNearby float64 `json:"universities_nearby,omitempty"`
}

// NeighborhoodTransport holds 1..10 mobility scores.
type NeighborhoodTransport struct {
	PublicTransitScore float64 `json:"public_transit_score,omitempty"`
	WalkabilityScore   float64 `json:"walkability_score,omitempty"`
	BikeScore          float64 `json:"bike_score,omitempty"`
}

// NeighborhoodAmenities counts nearby services.
type NeighborhoodAmenities struct {
	Restaurants     float64 `json:"restaurants,omitempty"`
	GroceryStores   float64 `json:"grocery_stores,omitempty"`
	Parks           float64 `json:"parks,omitempty"`
	Hospitals       float64 `json:"hospitals,omitempty"`
	ShoppingCenters float64 `json:"shopping_centers,omitempty"`
}

// NeighborhoodLifestyle holds 1..10 character scores.
type NeighborhoodLifestyle struct {
	NightlifeScore      float64 `json:"nightlife_score,omitempty"`
	FamilyFriendlyScore float64 `json:"family_friendly_score,omitempty"`
	DiversityScore      float64 `json:"diversity_score,omitempty"`
}

// CostOfLiving indices use 100 as the national baseline.
type CostOfLiving struct {
	OverallIndex   float64 `json:"overall_index,omitempty"`
	GroceryIndex   float64 `json:"grocery_index,omitempty"`
	HousingIndex   float64 `json:"housing_index,omitempty"`
	UtilitiesIndex float64 `json:"utilities_index,omitempty"`
}

// OverallScore averages the known safety, school, walkability and
// family-friendliness ratings. Returns 0 when none is known.
func (n *Neighborhood) OverallScore() float64 {
	var sum float64
	var count int
	for _, v := range []float64{
		n.Safety.SafetyRating,
		n.Education.SchoolRating,
		n.Transportation.WalkabilityScore,
		n.Lifestyle.FamilyFriendlyScore,
	} {
		if v > 0 {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// NeighborhoodSummary is the listing view of a neighborhood.
type NeighborhoodSummary struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	City             string       `json:"city"`
	State            string       `json:"state"`
	ZipCode          string       `json:"zip_code,omitempty"`
	Description      string       `json:"description,omitempty"`
	SafetyRating     float64      `json:"safety_rating"`
	MedianHomePrice  float64      `json:"median_home_price"`
	SchoolRating     float64      `json:"school_rating"`
	WalkabilityScore float64      `json:"walkability_score"`
	OverallScore     float64      `json:"overall_score"`
	CostOfLiving     CostOfLiving `json:"cost_of_living"`
}

// Summary builds the listing view of n.
func (n *Neighborhood) Summary() NeighborhoodSummary {
	return NeighborhoodSummary{
		ID:               n.ID,
		Name:             n.Name,
		City:             n.City,
		State:            n.State,
		ZipCode:          n.ZipCode,
		Description:      n.Description,
		SafetyRating:     n.Safety.SafetyRating,
		MedianHomePrice:  n.Housing.MedianHomePrice,
		SchoolRating:     n.Education.SchoolRating,
		WalkabilityScore: n.Transportation.WalkabilityScore,
		OverallScore:     n.OverallScore(),
		CostOfLiving:     n.CostOfLiving,
	}
}
