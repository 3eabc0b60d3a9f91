package loadtest

import (
	"errors"
	"fmt"

	"github.com/okian/neighborfit/internal/domain/model"
	"github.com/okian/neighborfit/internal/domain/scoring"
)

// ErrRankingViolation marks a ranking that breaks an ordering or range rule.
var ErrRankingViolation = errors.New("ranking violation")

// verifyRanking checks one user's result list: at most limit entries, ranks
// 1..n in order, totals non-increasing, every score in range and quality
// tiers that agree with the compatibility.
func verifyRanking(results []model.MatchResult, limit int) error {
	if limit > 0 && len(results) > limit {
		return fmt.Errorf("%w: %d results for limit %d", ErrRankingViolation, len(results), limit)
	}
	for i, r := range results {
		if r.Rank != i+1 {
			return fmt.Errorf("%w: position %d has rank %d", ErrRankingViolation, i, r.Rank)
		}
		if r.ID == "" {
			return fmt.Errorf("%w: rank %d has no match id", ErrRankingViolation, r.Rank)
		}
		if r.Compatibility < 0 || r.Compatibility > 100 {
			return fmt.Errorf("%w: rank %d compatibility %d", ErrRankingViolation, r.Rank, r.Compatibility)
		}
		if r.Quality != model.QualityOf(r.Compatibility) {
			return fmt.Errorf("%w: rank %d quality %+v for compatibility %d", ErrRankingViolation, r.Rank, r.Quality, r.Compatibility)
		}
		for name, v := range map[string]float64{
			"total":     r.Scores.Total,
			"budget":    r.Scores.Budget,
			"lifestyle": r.Scores.Lifestyle,
			"location":  r.Scores.Location,
			"amenities": r.Scores.Amenities,
			"safety":    r.Scores.Safety,
		} {
			if v < 0 || v > 1 {
				return fmt.Errorf("%w: rank %d %s score %.4f", ErrRankingViolation, r.Rank, name, v)
			}
		}
		if i > 0 && r.Scores.Total > results[i-1].Scores.Total {
			return fmt.Errorf("%w: rank %d total %.4f above rank %d total %.4f",
				ErrRankingViolation, r.Rank, r.Scores.Total, results[i-1].Rank, results[i-1].Scores.Total)
		}
	}
	return nil
}

// verifyAlgorithm checks the calculate metadata: every neighborhood the server
// knows about was scored.
func verifyAlgorithm(a *scoring.Algorithm) error {
	if a == nil {
		return fmt.Errorf("%w: missing algorithm block", ErrRankingViolation)
	}
	if a.ProcessedNeighborhoods != a.TotalNeighborhoods {
		return fmt.Errorf("%w: processed %d of %d neighborhoods",
			ErrRankingViolation, a.ProcessedNeighborhoods, a.TotalNeighborhoods)
	}
	return nil
}
