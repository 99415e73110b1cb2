package services

import (
	"context"
	"errors"
	"fmt"

	"conferencecentral/internal/domain"
)

type speakerService struct {
	speakerRepo domain.SpeakerRepository
	profileRepo domain.ProfileRepository
}

// NewSpeakerService creates a SpeakerService with the given repositories.
func NewSpeakerService(speakerRepo domain.SpeakerRepository, profileRepo domain.ProfileRepository) domain.SpeakerService {
	return &speakerService{
		speakerRepo: speakerRepo,
		profileRepo: profileRepo,
	}
}

func (s *speakerService) Create(ctx context.Context, id domain.Identity, speaker *domain.Speaker) error {
	if _, err := ensureProfile(ctx, s.profileRepo, id); err != nil {
		return err
	}
	if err := s.speakerRepo.Create(ctx, speaker); err != nil {
		if errors.Is(err, domain.ErrDuplicateSpeakerEmail) {
			return domain.ErrDuplicateSpeakerEmail
		}
		return fmt.Errorf("create speaker: %w", err)
	}
	return nil
}

func (s *speakerService) Get(ctx context.Context, speakerID string) (*domain.Speaker, error) {
	speaker, err := s.speakerRepo.GetByID(ctx, speakerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	return speaker, nil
}

func (s *speakerService) Search(ctx context.Context, name, email string) ([]*domain.Speaker, error) {
	speakers, err := s.speakerRepo.Search(ctx, name, email)
	if err != nil {
		return nil, fmt.Errorf("search speakers: %w", err)
	}
	return speakers, nil
}
