package model

import "time"

// Scores is the per-category breakdown of a compatibility calculation.
// Every value lies in [0,1].
type Scores struct {
	Total     float64 `json:"total"`
	Budget    float64 `json:"budget"`
	Lifestyle float64 `json:"lifestyle"`
	Location  float64 `json:"location"`
	Amenities float64 `json:"amenities"`
	Safety    float64 `json:"safety"`
}

// MatchResult is one ranked neighborhood for a profile.
// ID, Interaction and Rating are set once the result is stored as a Match.
type MatchResult struct {
	ID            string       `json:"id,omitempty"`
	Rank          int          `json:"rank"`
	Neighborhood  Neighborhood `json:"neighborhood"`
	Scores        Scores       `json:"scores"`
	Compatibility int          `json:"compatibility"`
	Quality       MatchQuality `json:"quality"`
	Interaction   Interaction  `json:"interaction,omitempty"`
	Rating        int          `json:"rating,omitempty"`
}

// Compatibility thresholds for the quality tiers.
const (
	PerfectMatchThreshold    = 90
	GoodMatchThreshold       = 75
	AcceptableMatchThreshold = 60
)

// MatchQuality flags the tiers a compatibility percentage reaches. A higher
// tier implies every lower one.
type MatchQuality struct {
	Perfect    bool `json:"is_perfect_match"`
	Good       bool `json:"is_good_match"`
	Acceptable bool `json:"is_acceptable_match"`
}

// QualityOf derives the quality tiers from a compatibility percentage.
func QualityOf(compatibility int) MatchQuality {
	return MatchQuality{
		Perfect:    compatibility >= PerfectMatchThreshold,
		Good:       compatibility >= GoodMatchThreshold,
		Acceptable: compatibility >= AcceptableMatchThreshold,
	}
}

// Interaction is the user's reaction to a stored match.
type Interaction string

// Supported interactions.
const (
	InteractionNone     Interaction = ""
	InteractionLiked    Interaction = "liked"
	InteractionDisliked Interaction = "disliked"
	InteractionSaved    Interaction = "saved"
)

// Valid reports whether i is one of the supported interactions.
func (i Interaction) Valid() bool {
	switch i {
	case InteractionNone, InteractionLiked, InteractionDisliked, InteractionSaved:
		return true
	default:
		return false
	}
}

// Match is a MatchResult kept as part of a user's latest match set.
type Match struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	NeighborhoodID string      `json:"neighborhood_id"`
	Rank           int         `json:"rank"`
	Compatibility  int         `json:"compatibility"`
	Scores         Scores      `json:"scores"`
	Interaction    Interaction `json:"interaction,omitempty"`
	Rating         int         `json:"rating,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
