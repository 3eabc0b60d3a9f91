// Package loadtest drives a running neighborfit server with generated users
// and checks every ranking it returns.
package loadtest

import (
	"time"

	"github.com/okian/neighborfit/internal/domain/model"
	"github.com/okian/neighborfit/internal/domain/scoring"
)

// Config holds configuration for a load test run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Users      int           // Number of users (profiles) to generate
	Limit      int           // Matches requested per user
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Optional file for the generated profiles
	Verbose    bool          // Log every failure
}

// Stats holds run statistics.
type Stats struct {
	ProfilesGenerated int
	ProfilesStored    int
	ProfilesFailed    int
	RankingsRetrieved int
	RankingsFailed    int
	Violations        int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}

// matchesResponse mirrors the body of POST /matches/{userID}/calculate.
type matchesResponse struct {
	UserID    string              `json:"user_id"`
	Matches   []model.MatchResult `json:"matches"`
	Count     int                 `json:"count"`
	Algorithm *scoring.Algorithm  `json:"algorithm"`
}

// userProfile pairs a generated profile with its user.
type userProfile struct {
	UserID  string                   `json:"user_id"`
	Profile *model.PreferenceProfile `json:"profile"`
}
