package services

import (
	"context"
	"errors"
	"fmt"

	"conferencecentral/internal/domain"
)

type attendeeService struct {
	conferenceRepo   domain.ConferenceRepository
	profileRepo      domain.ProfileRepository
	registrationRepo domain.RegistrationRepository
}

// NewAttendeeService creates an AttendeeService with the given repositories.
func NewAttendeeService(
	conferenceRepo domain.ConferenceRepository,
	profileRepo domain.ProfileRepository,
	registrationRepo domain.RegistrationRepository,
) domain.AttendeeService {
	return &attendeeService{
		conferenceRepo:   conferenceRepo,
		profileRepo:      profileRepo,
		registrationRepo: registrationRepo,
	}
}

func (s *attendeeService) Register(ctx context.Context, id domain.Identity, conferenceID string) error {
	profile, err := ensureProfile(ctx, s.profileRepo, id)
	if err != nil {
		return err
	}
	return s.registrationRepo.Register(ctx, profile.ID, conferenceID)
}

func (s *attendeeService) Unregister(ctx context.Context, id domain.Identity, conferenceID string) (bool, error) {
	// Verify the conference exists so a bad key reads as not found rather
	// than as "was not registered".
	if _, err := s.conferenceRepo.GetByID(ctx, conferenceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get conference: %w", err)
	}
	return s.registrationRepo.Unregister(ctx, id.UserID, conferenceID)
}

func (s *attendeeService) ListAttending(ctx context.Context, id domain.Identity) ([]*domain.ConferenceWithOrganizer, error) {
	profile, err := ensureProfile(ctx, s.profileRepo, id)
	if err != nil {
		return nil, err
	}
	ids, err := s.registrationRepo.ListConferenceIDs(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	confs, err := s.conferenceRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get conferences: %w", err)
	}

	// Restore registration order; the multi-get does not preserve it.
	byID := make(map[string]*domain.Conference, len(confs))
	for _, conf := range confs {
		byID[conf.ID] = conf
	}
	ordered := make([]*domain.Conference, 0, len(confs))
	for _, confID := range ids {
		if conf, ok := byID[confID]; ok {
			ordered = append(ordered, conf)
		}
	}

	namesByID := make(map[string]string)
	result := make([]*domain.ConferenceWithOrganizer, 0, len(ordered))
	for _, conf := range ordered {
		name, ok := namesByID[conf.OrganizerID]
		if !ok {
			organizer, err := s.profileRepo.GetByID(ctx, conf.OrganizerID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("get organizer profile: %w", err)
			}
			if organizer != nil {
				name = organizer.DisplayName
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
