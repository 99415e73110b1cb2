package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"conferencecentral/internal/domain"
)

// announcementThreshold is the seat count at or under which a conference
// counts as nearly sold out.
const announcementThreshold = 5

const announcementTemplate = "Last chance to attend! The following conferences are nearly sold out: %s"

type announcementService struct {
	conferenceRepo domain.ConferenceRepository
	sessionRepo    domain.SessionRepository
	speakerRepo    domain.SpeakerRepository
	cache          domain.Cache
}

// NewAnnouncementService creates an AnnouncementService with the given
// repositories and cache.
func NewAnnouncementService(
	conferenceRepo domain.ConferenceRepository,
	sessionRepo domain.SessionRepository,
	speakerRepo domain.SpeakerRepository,
	cache domain.Cache,
) domain.AnnouncementService {
	return &announcementService{
		conferenceRepo: conferenceRepo,
		sessionRepo:    sessionRepo,
		speakerRepo:    speakerRepo,
		cache:          cache,
	}
}

func (s *announcementService) RefreshAnnouncement(ctx context.Context) (string, error) {
	confs, err := s.conferenceRepo.ListNearlySoldOut(ctx, announcementThreshold)
	if err != nil {
		return "", fmt.Errorf("list nearly sold out conferences: %w", err)
	}

	if len(confs) == 0 {
		if err := s.cache.Delete(ctx, domain.CacheKeyAnnouncements); err != nil {
			return "", fmt.Errorf("delete announcement: %w", err)
		}
		return "", nil
	}

	names := make([]string, 0, len(confs))
	for _, conf := range confs {
		names = append(names, conf.Name)
	}
	announcement := fmt.Sprintf(announcementTemplate, strings.Join(names, ", "))
	if err := s.cache.Set(ctx, domain.CacheKeyAnnouncements, announcement); err != nil {
		return "", fmt.Errorf("set announcement: %w", err)
	}
	return announcement, nil
}

func (s *announcementService) GetAnnouncement(ctx context.Context) (string, error) {
	value, ok, err := s.cache.Get(ctx, domain.CacheKeyAnnouncements)
	if err != nil {
		return "", fmt.Errorf("get announcement: %w", err)
	}
	if !ok {
		return "", nil
	}
	return value, nil
}

// SetFeaturedSpeaker recomputes the featured-speaker entry. A speaker with
// fewer than two sessions in the conference never displaces the current
// entry; the cache only moves forward to a new featured speaker.
func (s *announcementService) SetFeaturedSpeaker(ctx context.Context, conferenceID, speakerID string) (string, error) {
	sessions, err := s.sessionRepo.ListBySpeakerInConference(ctx, conferenceID, speakerID)
	if err != nil {
		return "", fmt.Errorf("list speaker sessions: %w", err)
	}
	if len(sessions) < 2 {
		return "", nil
	}

	speaker, err := s.speakerRepo.GetByID(ctx, speakerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get speaker: %w", err)
	}

	names := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		names = append(names, sess.Name)
	}
	value := fmt.Sprintf("%s is speaking at: %s", speaker.Name, strings.Join(names, ", "))
	if err := s.cache.Set(ctx, domain.CacheKeyFeaturedSpeaker, value); err != nil {
		return "", fmt.Errorf("set featured speaker: %w", err)
	}
	return value, nil
}

func (s *announcementService) GetFeaturedSpeaker(ctx context.Context) (string, error) {
	value, ok, err := s.cache.Get(ctx, domain.CacheKeyFeaturedSpeaker)
	if err != nil {
		return "", fmt.Errorf("get featured speaker: %w", err)
	}
	if !ok {
		return "", nil
	}
	return value, nil
}
