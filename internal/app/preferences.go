package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okian/neighborfit/internal/adapters/repository"
	"github.com/okian/neighborfit/internal/domain/model"
	"github.com/okian/neighborfit/internal/domain/scoring"
	"github.com/okian/neighborfit/internal/validation"
	"github.com/okian/neighborfit/pkg/logger"
	"github.com/okian/neighborfit/pkg/metrics"
)

// SavePreferences validates p and stores it as userID's profile, replacing any
// previous one. The caller's value is not modified.
func (s *Service) SavePreferences(ctx context.Context, userID string, p *model.PreferenceProfile) (*model.PreferenceProfile, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &scoring.InputError{Field: "preferences"}
	}

	profile := p.Clone()
	profile.UserID = userID
	profile.Normalize()
	if verr := validation.ValidateStruct(profile); verr != nil {
		metrics.RecordInputError()
		return nil, verr
	}

	stored, err := s.preferences.Put(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	s.log().Debug(ctx, "preferences saved", logger.String("userID", userID))
	return stored, nil
}

// Preferences returns userID's stored profile.
func (s *Service) Preferences(ctx context.Context, userID string) (*model.PreferenceProfile, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}
	p, err := s.preferences.Get(ctx, userID)
	if err != nil {
		return nil, preferencesErr(err)
	}
	return p, nil
}

// DeletePreferences removes userID's profile together with its match set.
func (s *Service) DeletePreferences(ctx context.Context, userID string) error {
	if err := checkUserID(userID); err != nil {
		return err
	}
	if err := s.preferences.Delete(ctx, userID); err != nil {
		return preferencesErr(err)
	}
	if _, err := s.matches.Replace(ctx, userID, nil); err != nil {
		return fmt.Errorf("clear matches: %w", err)
	}
	s.log().Info(ctx, "preferences deleted", logger.String("userID", userID))
	return nil
}

// PreferenceSummary returns the compact view of userID's profile.
func (s *Service) PreferenceSummary(ctx context.Context, userID string) (model.PreferenceSummary, error) {
	p, err := s.Preferences(ctx, userID)
	if err != nil {
		return model.PreferenceSummary{}, err
	}
	return p.Summary(), nil
}

func checkUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return repository.ErrMissingUserID
	}
	return nil
}

func preferencesErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrPreferencesNotFound, err)
	}
	return fmt.Errorf("load preferences: %w", err)
}
