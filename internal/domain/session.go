package domain

import (
	"context"
	"time"
)

// SessionTypes is the fixed session-type vocabulary. Session types are
// free-form on write; the vocabulary is only consulted when computing the
// complement for "excluding types" queries.
var SessionTypes = []string{
	"lecture",
	"workshop",
	"presentation",
	"roundtable",
	"panel",
	"think tank",
	"professional development",
	"other",
}

// Session represents a conference session or talk. The conference reference
// is an explicit foreign key; the speaker reference is optional.
// swagger:model Session
type Session struct {
	ID            string     `json:"id"`
	ConferenceID  string     `json:"conference_id"`
	Name          string     `json:"name"`
	Highlights    []string   `json:"highlights"`
	SpeakerID     string     `json:"speaker_id"`
	Duration      string     `json:"duration"`
	TypeOfSession string     `json:"type_of_session"`
	Date          *time.Time `json:"date"`
	StartTime     *time.Time `json:"start_time"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SessionWithSpeaker bundles a session with its resolved speaker for read
// responses. Speaker is nil when the session has no speaker reference.
type SessionWithSpeaker struct {
	Session *Session
	Speaker *Speaker
}

// SessionRepository defines the interface for session storage.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Session, error)
	// ListByConference returns the conference's sessions; a non-empty
	// typeOfSession narrows to that type.
	ListByConference(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	ListBySpeaker(ctx context.Context, speakerID string) ([]*Session, error)
	ListByTypes(ctx context.Context, types []string) ([]*Session, error)
	// ListByStartTime returns the conference's sessions starting at or after
	// the given time of day.
	ListByStartTime(ctx context.Context, conferenceID string, after time.Time) ([]*Session, error)
	ListByStartTimeAndTypes(ctx context.Context, after time.Time, types []string) ([]*Session, error)
	// ListBySpeakerInConference supports the featured-speaker computation.
	ListBySpeakerInConference(ctx context.Context, conferenceID, speakerID string) ([]*Session, error)
}

// WishlistRepository holds per-profile session wishlists.
type WishlistRepository interface {
	// Add fails with ErrAlreadyInWishlist when the pair already exists.
	Add(ctx context.Context, profileID, sessionID string) error
	// Remove returns false without error when the pair does not exist.
	Remove(ctx context.Context, profileID, sessionID string) (bool, error)
	ListSessionIDs(ctx context.Context, profileID string) ([]string, error)
}

// SessionService defines session and wishlist business logic.
type SessionService interface {
	// Create persists the session under its conference (owner only) and
	// submits the featured-speaker and confirmation-email tasks.
	Create(ctx context.Context, id Identity, session *Session, confirmationInfo string) (*SessionWithSpeaker, error)
	ListByConference(ctx context.Context, conferenceID, typeOfSession string) ([]*SessionWithSpeaker, error)
	ListBySpeaker(ctx context.Context, speakerID string) ([]*SessionWithSpeaker, error)
	ListByTypes(ctx context.Context, types []string) ([]*SessionWithSpeaker, error)
	ListByStartTime(ctx context.Context, conferenceID string, after time.Time) ([]*SessionWithSpeaker, error)
	// ListByStartTimeExcludingTypes filters by membership in the session-type
	// vocabulary minus the excluded set.
	ListByStartTimeExcludingTypes(ctx context.Context, after time.Time, excluded []string) ([]*SessionWithSpeaker, error)

	AddToWishlist(ctx context.Context, id Identity, sessionID string) error
	RemoveFromWishlist(ctx context.Context, id Identity, sessionID string) (bool, error)
	ListWishlist(ctx context.Context, id Identity) ([]*SessionWithSpeaker, error)
}
