package services

import (
	"context"
	"errors"
	"fmt"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type conferenceService struct {
	conferenceRepo domain.ConferenceRepository
	profileRepo    domain.ProfileRepository
	queue          domain.TaskQueue
}

// NewConferenceService creates a ConferenceService with the given
// repositories and task queue.
func NewConferenceService(
	conferenceRepo domain.ConferenceRepository,
	profileRepo domain.ProfileRepository,
	queue domain.TaskQueue,
) domain.ConferenceService {
	return &conferenceService{
		conferenceRepo: conferenceRepo,
		profileRepo:    profileRepo,
		queue:          queue,
	}
}

func (s *conferenceService) Create(ctx context.Context, id domain.Identity, conf *domain.Conference, confirmationInfo string) error {
	profile, err := ensureProfile(ctx, s.profileRepo, id)
	if err != nil {
		return err
	}
	conf.OrganizerID = profile.ID

	if err := s.conferenceRepo.Create(ctx, conf); err != nil {
		return fmt.Errorf("create conference: %w", err)
	}

	if err := s.queue.Submit(ctx, domain.TaskSendConfirmationEmail, map[string]string{
		"email":          profile.MainEmail,
		"conferenceInfo": confirmationInfo,
	}); err != nil {
		return fmt.Errorf("submit confirmation task: %w", err)
	}
	return nil
}

func (s *conferenceService) Update(ctx context.Context, id domain.Identity, conferenceID string, apply func(*domain.Conference) error) (*domain.ConferenceWithOrganizer, error) {
	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conf.OrganizerID != id.UserID {
		return nil, domain.ErrForbidden
	}

	if err := apply(conf); err != nil {
		return nil, err
	}
	if err := s.conferenceRepo.Update(ctx, conf); err != nil {
		return nil, fmt.Errorf("update conference: %w", err)
	}
	return s.withOrganizer(ctx, conf)
}

func (s *conferenceService) Get(ctx context.Context, conferenceID string) (*domain.ConferenceWithOrganizer, error) {
	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	return s.withOrganizer(ctx, conf)
}

func (s *conferenceService) ListCreated(ctx context.Context, id domain.Identity) ([]*domain.ConferenceWithOrganizer, error) {
	profile, err := ensureProfile(ctx, s.profileRepo, id)
	if err != nil {
		return nil, err
	}
	confs, err := s.conferenceRepo.ListByOrganizer(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}

	result := make([]*domain.ConferenceWithOrganizer, 0, len(confs))
	for _, conf := range confs {
		result = append(result, &domain.ConferenceWithOrganizer{
			Conference:  conf,
			DisplayName: profile.DisplayName,
		})
	}
	return result, nil
}

func (s *conferenceService) QueryConferences(ctx context.Context, filters []query.Filter) ([]*domain.ConferenceWithOrganizer, error) {
	compiled, err := query.Compile(filters)
	if err != nil {
		return nil, err
	}
	confs, err := s.conferenceRepo.Query(ctx, compiled)
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}
	return s.resolveOrganizers(ctx, confs)
}

func (s *conferenceService) withOrganizer(ctx context.Context, conf *domain.Conference) (*domain.ConferenceWithOrganizer, error) {
	result, err := s.resolveOrganizers(ctx, []*domain.Conference{conf})
	if err != nil {
		return nil, err
	}
	return result[0], nil
}

// resolveOrganizers joins each conference with its organizer's display name,
// fetching each distinct organizer once.
func (s *conferenceService) resolveOrganizers(ctx context.Context, confs []*domain.Conference) ([]*domain.ConferenceWithOrganizer, error) {
	namesByID := make(map[string]string)
	result := make([]*domain.ConferenceWithOrganizer, 0, len(confs))
	for _, conf := range confs {
		name, ok := namesByID[conf.OrganizerID]
		if !ok {
			profile, err := s.profileRepo.GetByID(ctx, conf.OrganizerID)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					return nil, fmt.Errorf("get organizer profile: %w", err)
				}
				// Organizer profile gone; keep the conference with no name.
			} else {
				name = profile.DisplayName
			}
			namesByID[conf.OrganizerID] = name
		}
		result = append(result, &domain.ConferenceWithOrganizer{
			Conference:  conf,
			DisplayName: name,
		})
	}
	return result, nil
}
