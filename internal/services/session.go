package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type sessionService struct {
	sessionRepo    domain.SessionRepository
	conferenceRepo domain.ConferenceRepository
	speakerRepo    domain.SpeakerRepository
	profileRepo    domain.ProfileRepository
	wishlistRepo   domain.WishlistRepository
	queue          domain.TaskQueue
}

// NewSessionService creates a SessionService with the given repositories and
// task queue.
func NewSessionService(
	sessionRepo domain.SessionRepository,
	conferenceRepo domain.ConferenceRepository,
	speakerRepo domain.SpeakerRepository,
	profileRepo domain.ProfileRepository,
	wishlistRepo domain.WishlistRepository,
	queue domain.TaskQueue,
) domain.SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		conferenceRepo: conferenceRepo,
		speakerRepo:    speakerRepo,
		profileRepo:    profileRepo,
		wishlistRepo:   wishlistRepo,
		queue:          queue,
	}
}

func (s *sessionService) Create(ctx context.Context, id domain.Identity, session *domain.Session, confirmationInfo string) (*domain.SessionWithSpeaker, error) {
	conf, err := s.conferenceRepo.GetByID(ctx, session.ConferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conf.OrganizerID != id.UserID {
		return nil, domain.ErrForbidden
	}

	var speaker *domain.Speaker
	if session.SpeakerID != "" {
		speaker, err = s.speakerRepo.GetByID(ctx, session.SpeakerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get speaker: %w", err)
		}
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if session.SpeakerID != "" {
		if err := s.queue.Submit(ctx, domain.TaskSetFeaturedSpeaker, map[string]string{
			"conferenceID": session.ConferenceID,
			"speakerID":    session.SpeakerID,
		}); err != nil {
			return nil, fmt.Errorf("submit featured speaker task: %w", err)
		}
	}
	if err := s.queue.Submit(ctx, domain.TaskSendConfirmationEmail, map[string]string{
		"email":          id.Email,
		"conferenceInfo": confirmationInfo,
	}); err != nil {
		return nil, fmt.Errorf("submit confirmation task: %w", err)
	}

	return &domain.SessionWithSpeaker{Session: session, Speaker: speaker}, nil
}

func (s *sessionService) ListByConference(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.SessionWithSpeaker, error) {
	if _, err := s.conferenceRepo.GetByID(ctx, conferenceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	sessions, err := s.sessionRepo.ListByConference(ctx, conferenceID, typeOfSession)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return s.resolveSpeakers(ctx, sessions)
}

func (s *sessionService) ListBySpeaker(ctx context.Context, speakerID string) ([]*domain.SessionWithSpeaker, error) {
	sessions, err := s.sessionRepo.ListBySpeaker(ctx, speakerID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return s.resolveSpeakers(ctx, sessions)
}

func (s *sessionService) ListByTypes(ctx context.Context, types []string) ([]*domain.SessionWithSpeaker, error) {
	sessions, err := s.sessionRepo.ListByTypes(ctx, types)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return s.resolveSpeakers(ctx, sessions)
}

func (s *sessionService) ListByStartTime(ctx context.Context, conferenceID string, after time.Time) ([]*domain.SessionWithSpeaker, error) {
	sessions, err := s.sessionRepo.ListByStartTime(ctx, conferenceID, after)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return s.resolveSpeakers(ctx, sessions)
}

// ListByStartTimeExcludingTypes rewrites the exclusion as membership in the
// session-type vocabulary minus the excluded set, sidestepping the
// two-inequality query this would otherwise need.
func (s *sessionService) ListByStartTimeExcludingTypes(ctx context.Context, after time.Time, excluded []string) ([]*domain.SessionWithSpeaker, error) {
	wanted := make([]string, 0, len(domain.SessionTypes))
	for _, t := range domain.SessionTypes {
		skip := false
		for _, ex := range excluded {
			if strings.EqualFold(t, ex) {
				skip = true
				break
			}
		}
		if !skip {
			wanted = append(wanted, t)
		}
	}
	sessions, err := s.sessionRepo.ListByStartTimeAndTypes(ctx, after, wanted)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return s.resolveSpeakers(ctx, sessions)
}

func (s *sessionService) AddToWishlist(ctx context.Context, id domain.Identity, sessionID string) error {
	profile, err := ensureProfile(ctx, s.profileRepo, id)
	if err != nil {
		return err
	}
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get session: %w", err)
	}
	return s.wishlistRepo.Add(ctx, profile.ID, sessionID)
}

func (s *sessionService) RemoveFromWishlist(ctx context.Context, id domain.Identity, sessionID string) (bool, error) {
	profile, err := ensureProfile(ctx, s.profileRepo, id)
	if err != nil {
		return false, err
	}
	// A key that resolves to no session is not found; only a session that
	// exists but is absent from the wishlist reads as a no-op.
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get session: %w", err)
	}
	return s.wishlistRepo.Remove(ctx, profile.ID, sessionID)
}

func (s *sessionService) ListWishlist(ctx context.Context, id domain.Identity) ([]*domain.SessionWithSpeaker, error) {
	profile, err := ensureProfile(ctx, s.profileRepo, id)
	if err != nil {
		return nil, err
	}
	ids, err := s.wishlistRepo.ListSessionIDs(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	sessions, err := s.sessionRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get sessions: %w", err)
	}

	// Restore wishlist order; the multi-get does not preserve it.
	byID := make(map[string]*domain.Session, len(sessions))
	for _, sess := range sessions {
		byID[sess.ID] = sess
	}
	ordered := make([]*domain.Session, 0, len(sessions))
	for _, sessionID := range ids {
		if sess, ok := byID[sessionID]; ok {
			ordered = append(ordered, sess)
		}
	}
	return s.resolveSpeakers(ctx, ordered)
}

// resolveSpeakers joins each session with its speaker, fetching each distinct
// speaker once. Sessions without a speaker keep a nil Speaker.
func (s *sessionService) resolveSpeakers(ctx context.Context, sessions []*domain.Session) ([]*domain.SessionWithSpeaker, error) {
	speakersByID := make(map[string]*domain.Speaker)
	result := make([]*domain.SessionWithSpeaker, 0, len(sessions))
	for _, sess := range sessions {
		var speaker *domain.Speaker
		if sess.SpeakerID != "" {
			cached, ok := speakersByID[sess.SpeakerID]
			if !ok {
				fetched, err := s.speakerRepo.GetByID(ctx, sess.SpeakerID)
				if err != nil && !errors.Is(err, domain.ErrNotFound) {
					return nil, fmt.Errorf("get speaker: %w", err)
				}
				cached = fetched
				speakersByID[sess.SpeakerID] = cached
			}
			speaker = cached
		}
		result = append(result, &domain.SessionWithSpeaker{
			Session: sess,
			Speaker: speaker,
		})
	}
	return result, nil
}
