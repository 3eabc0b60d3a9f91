package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/neighborfit/internal/adapters/repository"
	"github.com/okian/neighborfit/internal/domain/model"
	"github.com/okian/neighborfit/internal/domain/scoring"
	"github.com/okian/neighborfit/pkg/logger"
	"github.com/okian/neighborfit/pkg/metrics"
)

// CalculateMatches ranks every known neighborhood against userID's profile,
// replaces the user's stored match set with the best limit results and returns
// them. A limit <= 0 uses the default; larger values are capped.
func (s *Service) CalculateMatches(ctx context.Context, userID string, limit int) ([]model.MatchResult, error) {
	r, err := s.Calculate(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return r.Matches, nil
}

// Calculate is CalculateMatches that also reports the weights and how many
// neighborhoods were considered and scored.
func (s *Service) Calculate(ctx context.Context, userID string, limit int) (scoring.Ranking, error) {
	p, err := s.Preferences(ctx, userID)
	if err != nil {
		return scoring.Ranking{}, err
	}
	limit = s.clampMatchLimit(limit)
	candidates := s.neighborhoods.All(ctx)

	rctx, cancel := context.WithTimeout(ctx, s.rankingTimeout)
	defer cancel()

	start := time.Now()
	results, err := s.scorer.Rank(rctx, p, candidates, limit)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordRankingFailure()
		if errors.Is(err, scoring.ErrInput) {
			metrics.RecordInputError()
		}
		s.log().Error(ctx, "ranking failed",
			logger.String("userID", userID),
			logger.Int("candidates", len(candidates)),
			logger.Duration("elapsed", elapsed),
			logger.Error(err),
		)
		return scoring.Ranking{}, err
	}
	metrics.RecordRanking(len(candidates), float64(elapsed.Microseconds())/1000)

	ms := make([]model.Match, len(results))
	for i, r := range results {
		metrics.RecordMatchCompatibility(r.Compatibility)
		ms[i] = model.Match{
			NeighborhoodID: r.Neighborhood.ID,
			Rank:           r.Rank,
			Compatibility:  r.Compatibility,
			Scores:         r.Scores,
		}
	}
	stored, err := s.matches.Replace(ctx, userID, ms)
	if err != nil {
		return scoring.Ranking{}, fmt.Errorf("store matches: %w", err)
	}
	for i := range results {
		results[i].ID = stored[i].ID
	}

	s.log().Info(ctx, "matches calculated",
		logger.String("userID", userID),
		logger.Int("candidates", len(candidates)),
		logger.Int("returned", len(results)),
		logger.Duration("elapsed", elapsed),
	)
	return scoring.Ranking{
		Matches: results,
		Algorithm: scoring.Algorithm{
			Weights:                s.scorer.Weights(),
			TotalNeighborhoods:     len(candidates),
			ProcessedNeighborhoods: len(candidates),
		},
	}, nil
}

// Matches returns userID's stored match set, recalculating it when asked to or
// when none exists yet. Matches whose neighborhood has since disappeared are skipped.
func (s *Service) Matches(ctx context.Context, userID string, limit int, recalculate bool) ([]model.MatchResult, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}
	if recalculate || !s.matches.Has(ctx, userID) {
		return s.CalculateMatches(ctx, userID, limit)
	}

	stored, err := s.matches.List(ctx, userID, s.clampMatchLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return s.join(ctx, stored), nil
}

// Analysis scores one neighborhood for userID and explains the result.
func (s *Service) Analysis(ctx context.Context, userID, neighborhoodID string) (scoring.Analysis, error) {
	p, err := s.Preferences(ctx, userID)
	if err != nil {
		return scoring.Analysis{}, err
	}
	n, err := s.Neighborhood(ctx, neighborhoodID)
	if err != nil {
		return scoring.Analysis{}, err
	}

	a, err := s.scorer.Analyze(p, &n)
	if err != nil {
		metrics.RecordInputError()
		return scoring.Analysis{}, err
	}
	metrics.RecordAnalysis()
	if !a.Factors.Complete() {
		s.log().Debug(ctx, "analysis with partial data",
			logger.String("userID", userID),
			logger.String("neighborhoodID", neighborhoodID),
			logger.Any("factors", a.Factors),
		)
	}
	return a, nil
}

// UpdateInteraction records the user's reaction to one of their matches.
func (s *Service) UpdateInteraction(ctx context.Context, userID, matchID string, action model.Interaction, rating int) (model.MatchResult, error) {
	if err := checkUserID(userID); err != nil {
		return model.MatchResult{}, err
	}
	m, err := s.matches.SetInteraction(ctx, matchID, userID, action, rating)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.MatchResult{}, fmt.Errorf("%w: %w", ErrMatchNotFound, err)
		}
		metrics.RecordInputError()
		return model.MatchResult{}, err
	}
	metrics.RecordMatchInteraction(string(action))

	n, err := s.neighborhoods.Get(ctx, m.NeighborhoodID)
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("%w: %w", ErrNeighborhoodNotFound, err)
	}
	return toResult(m, n), nil
}

// SavedMatches returns the matches userID saved, most recently saved first.
func (s *Service) SavedMatches(ctx context.Context, userID string) ([]model.MatchResult, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}
	saved, err := s.matches.Saved(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("saved matches: %w", err)
	}
	return s.join(ctx, saved), nil
}

// DeleteMatch removes one of userID's matches.
func (s *Service) DeleteMatch(ctx context.Context, userID, matchID string) error {
	if err := checkUserID(userID); err != nil {
		return err
	}
	if err := s.matches.Delete(ctx, matchID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %w", ErrMatchNotFound, err)
		}
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}

// join attaches the current neighborhood data to stored matches.
func (s *Service) join(ctx context.Context, ms []model.Match) []model.MatchResult {
	out := make([]model.MatchResult, 0, len(ms))
	for _, m := range ms {
		n, err := s.neighborhoods.Get(ctx, m.NeighborhoodID)
		if err != nil {
			s.log().Warn(ctx, "match references unknown neighborhood",
				logger.String("matchID", m.ID),
				logger.String("neighborhoodID", m.NeighborhoodID),
			)
			continue
		}
		out = append(out, toResult(m, n))
	}
	return out
}

func toResult(m model.Match, n model.Neighborhood) model.MatchResult {
	return model.MatchResult{
		ID:            m.ID,
		Rank:          m.Rank,
		Neighborhood:  n,
		Scores:        m.Scores,
		Compatibility: m.Compatibility,
		Quality:       model.QualityOf(m.Compatibility),
		Interaction:   m.Interaction,
		Rating:        m.Rating,
	}
}
