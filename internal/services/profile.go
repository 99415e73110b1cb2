package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type profileService struct {
	profileRepo domain.ProfileRepository
}

// NewProfileService creates a ProfileService with the given repository.
func NewProfileService(profileRepo domain.ProfileRepository) domain.ProfileService {
	return &profileService{
		profileRepo: profileRepo,
	}
}

// ensureProfile fetches the identity's profile, creating it on first access.
// The display name defaults to the identity's nickname, falling back to the
// local part of the email address.
func ensureProfile(ctx context.Context, repo domain.ProfileRepository, id domain.Identity) (*domain.Profile, error) {
	profile, err := repo.GetByID(ctx, id.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	displayName := id.Nickname
	if displayName == "" {
		displayName, _, _ = strings.Cut(id.Email, "@")
	}
	now := time.Now()
	profile = domain.NewProfile(id.UserID, displayName, id.Email, now, now)
	if err := repo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) Get(ctx context.Context, id domain.Identity) (*domain.Profile, error) {
	return ensureProfile(ctx, s.profileRepo, id)
}

func (s *profileService) Save(ctx context.Context, id domain.Identity, displayName, teeShirtSize string) (*domain.Profile, error) {
	profile, err := ensureProfile(ctx, s.profileRepo, id)
	if err != nil {
		return nil, err
	}

	if displayName != "" {
		profile.DisplayName = displayName
	}
	if teeShirtSize != "" {
		profile.TeeShirtSize = teeShirtSize
	}
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}
