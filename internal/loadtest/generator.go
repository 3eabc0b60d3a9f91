package loadtest

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/neighborfit/internal/domain/model"
	"github.com/okian/neighborfit/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	unsetChance        = 0.25
	minBudget          = 250000
	budgetRange        = 750000
	minRent            = 1200
	rentRange          = 2400
	maxPlaces          = 2
)

var (
	cities = []string{"Austin", "Dallas", "Denver", "Boulder", "Marfa", "Houston"} //nolint:gochecknoglobals // fixed sample
	states = []string{"TX", "CO", "CA"}                                           //nolint:gochecknoglobals // fixed sample
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomInt returns a value in [0, n).
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// importance returns a 1..10 weight, or 0 (unset) about a quarter of the time.
func importance() int {
	if getRandomFloat() < unsetChance {
		return 0
	}
	return model.MinImportance + randomInt(model.MaxImportance)
}

func pick(from []string) []string {
	n := randomInt(maxPlaces + 1)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, from[randomInt(len(from))])
	}
	return out
}

// generateProfile builds a random profile that passes validation.
func generateProfile() *model.PreferenceProfile {
	maxPrice := minBudget + getRandomFloat()*budgetRange
	maxRent := minRent + getRandomFloat()*rentRange
	p := &model.PreferenceProfile{
		Budget: model.BudgetPreferences{
			MinHomePrice: maxPrice / 2,
			MaxHomePrice: maxPrice,
			MinRent:      maxRent / 2,
			MaxRent:      maxRent,
		},
		Location: model.LocationPreferences{
			PreferredCities: pick(cities),
			PreferredStates: pick(states),
			PreferUrban:     getRandomFloat() < 0.5,
			PreferSuburban:  getRandomFloat() < 0.5,
			PreferRural:     getRandomFloat() < 0.2,
		},
		Lifestyle: model.LifestylePreferences{
			SafetyImportance:         importance(),
			EducationImportance:      importance(),
			WalkabilityImportance:    importance(),
			NightlifeImportance:      importance(),
			FamilyFriendlyImportance: importance(),
			DiversityImportance:      importance(),
		},
		Amenities: model.AmenityPreferences{
			RestaurantsImportance:   importance(),
			GroceryStoresImportance: importance(),
			ParksImportance:         importance(),
			HospitalsImportance:     importance(),
			ShoppingImportance:      importance(),
		},
		Transportation: model.TransportationPreferences{
			PublicTransitImportance: importance(),
			BikeFriendlyImportance:  importance(),
			CarDependency:           importance(),
		},
	}
	if getRandomFloat() < 0.5 {
		p.Demographics.PreferredAgeRange = &model.Range{Min: 25, Max: 45}
	}
	return p
}

// generateProfiles creates one profile per user with unique user IDs.
func generateProfiles(ctx context.Context, config *Config, stats *Stats) ([]userProfile, error) {
	logger.Get().Info(ctx, "generating profiles", logger.Int("users", config.Users))

	users := make([]userProfile, config.Users)
	for i := range users {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during profile generation: %w", err)
		}
		users[i] = userProfile{UserID: uuid.NewString(), Profile: generateProfile()}
	}

	stats.ProfilesGenerated = len(users)
	return users, nil
}
