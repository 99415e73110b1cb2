package domain

import (
	"context"
	"time"
)

// Speaker represents a speaker profile, shared across conferences.
// swagger:model Speaker
type Speaker struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	Credentials []string  `json:"credentials"`
	Title       string    `json:"title"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewSpeaker returns a new Speaker. ID is set by the repository on create.
func NewSpeaker(name, bio, title, email string, credentials []string, createdAt time.Time) *Speaker {
	return &Speaker{
		Name:        name,
		Bio:         bio,
		Credentials: credentials,
		Title:       title,
		Email:       email,
		CreatedAt:   createdAt,
	}
}

// SpeakerRepository defines the interface for speaker storage. Create fails
// with ErrDuplicateSpeakerEmail when a non-empty email is already taken
// (enforced by a store-level unique constraint).
type SpeakerRepository interface {
	Create(ctx context.Context, speaker *Speaker) error
	GetByID(ctx context.Context, id string) (*Speaker, error)
	// Search matches by email when given, else by name when given, else
	// returns all speakers.
	Search(ctx context.Context, name, email string) ([]*Speaker, error)
}

// SpeakerService defines speaker business logic.
type SpeakerService interface {
	Create(ctx context.Context, id Identity, speaker *Speaker) error
	Get(ctx context.Context, speakerID string) (*Speaker, error)
	Search(ctx context.Context, name, email string) ([]*Speaker, error)
}
