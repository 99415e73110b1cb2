package domain

import (
	"context"
	"time"

	"conferencecentral/internal/query"
)

// Conference represents a conference event.
// swagger:model Conference
type Conference struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	OrganizerID    string     `json:"organizer_id"`
	Topics         []string   `json:"topics"`
	City           string     `json:"city"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Month          int        `json:"month"`
	MaxAttendees   int        `json:"max_attendees"`
	SeatsAvailable int        `json:"seats_available"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ConferenceRepository defines the interface for conference storage.
type ConferenceRepository interface {
	Create(ctx context.Context, conf *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Conference, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*Conference, error)
	Update(ctx context.Context, conf *Conference) error
	// Query executes a compiled filter query in its declared order.
	Query(ctx context.Context, q *query.Compiled) ([]*Conference, error)
	// ListNearlySoldOut returns conferences with 0 < seats_available <= threshold.
	ListNearlySoldOut(ctx context.Context, threshold int) ([]*Conference, error)
}

// ConferenceWithOrganizer bundles a conference with its organizer's display
// name for read responses.
type ConferenceWithOrganizer struct {
	Conference  *Conference
	DisplayName string
}

// ConferenceService defines conference business logic.
type ConferenceService interface {
	// Create persists the conference and submits the confirmation-email task.
	// confirmationInfo is the serialized echo of the create request.
	Create(ctx context.Context, id Identity, conf *Conference, confirmationInfo string) error
	// Update applies apply to the stored conference inside an owner check.
	// apply mutates only fields present in the incoming record.
	Update(ctx context.Context, id Identity, conferenceID string, apply func(*Conference) error) (*ConferenceWithOrganizer, error)
	Get(ctx context.Context, conferenceID string) (*ConferenceWithOrganizer, error)
	ListCreated(ctx context.Context, id Identity) ([]*ConferenceWithOrganizer, error)
	QueryConferences(ctx context.Context, filters []query.Filter) ([]*ConferenceWithOrganizer, error)
}

// Registration state transitions for a profile x conference pair. Both
// mutate the registration row and the seat counter as one atomic unit.
type RegistrationRepository interface {
	// Register moves the pair to Registered. Fails with ErrAlreadyRegistered
	// or ErrNoSeatsAvailable; decrements seats_available on success.
	Register(ctx context.Context, profileID, conferenceID string) error
	// Unregister moves the pair to NotRegistered, incrementing
	// seats_available. Returns false without error when not registered.
	Unregister(ctx context.Context, profileID, conferenceID string) (bool, error)
	ListConferenceIDs(ctx context.Context, profileID string) ([]string, error)
}

// AttendeeService defines registration-facing operations.
type AttendeeService interface {
	Register(ctx context.Context, id Identity, conferenceID string) error
	Unregister(ctx context.Context, id Identity, conferenceID string) (bool, error)
	ListAttending(ctx context.Context, id Identity) ([]*ConferenceWithOrganizer, error)
}
