package scoring

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/okian/neighborfit/internal/domain/model"
)

// Rank scores every neighborhood against p and returns the best limit of them,
// highest total first. Ties keep input order. A limit <= 0 keeps all results.
//
// Scoring fans out across goroutines; the call either returns the complete
// ranking or an error, never a partial list.
func (s *Scorer) Rank(ctx context.Context, p *model.PreferenceProfile, neighborhoods []model.Neighborhood, limit int) ([]model.MatchResult, error) {
	if p == nil {
		return nil, &InputError{Field: "preferences"}
	}
	if len(neighborhoods) == 0 {
		return []model.MatchResult{}, nil
	}

	results := make([]model.MatchResult, len(neighborhoods))
	chunk := chunkSize(len(neighborhoods), s.concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for start := 0; start < len(neighborhoods); start += chunk {
		end := min(start+chunk, len(neighborhoods))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				n := &neighborhoods[i]
				results[i] = model.MatchResult{
					Neighborhood: *n,
					Scores:       s.Score(n, p).Scores,
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rank neighborhoods: %w", err)
	}
	// errgroup only reports errors from workers; a deadline that fires after
	// the last worker returned still fails the whole ranking.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rank neighborhoods: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Scores.Total > results[j].Scores.Total
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	for i := range results {
		results[i].Rank = i + 1
		results[i].Compatibility = Compatibility(results[i].Scores.Total)
		results[i].Quality = model.QualityOf(results[i].Compatibility)
	}
	return results, nil
}

// Algorithm describes one ranking run.
type Algorithm struct {
	Weights                Weights `json:"weights"`
	TotalNeighborhoods     int     `json:"total_neighborhoods"`
	ProcessedNeighborhoods int     `json:"processed_neighborhoods"`
}

// Ranking is the result of a ranking run together with how it was produced.
type Ranking struct {
	Matches   []model.MatchResult `json:"matches"`
	Algorithm Algorithm           `json:"algorithm"`
}

// chunkSize splits n items into at most workers contiguous blocks.
func chunkSize(n, workers int) int {
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers
	if size < 1 {
		size = 1
	}
	return size
}
