package domain

import (
	"context"
	"time"
)

// TeeShirtSizeNotSpecified is the default tee-shirt size assigned to a
// lazily-created profile.
const TeeShirtSizeNotSpecified = "NOT_SPECIFIED"

// teeShirtSizes is the fixed tee-shirt size vocabulary. Profiles persist the
// size as a plain string; mapping back to the wire enum fails closed on
// anything outside this set.
var teeShirtSizes = map[string]struct{}{
	"NOT_SPECIFIED": {},
	"XS_M":          {}, "XS_W": {},
	"S_M": {}, "S_W": {},
	"M_M": {}, "M_W": {},
	"L_M": {}, "L_W": {},
	"XL_M": {}, "XL_W": {},
	"XXL_M": {}, "XXL_W": {},
	"XXXL_M": {}, "XXXL_W": {},
}

// ValidTeeShirtSize reports whether s is a member of the tee-shirt size enum.
func ValidTeeShirtSize(s string) bool {
	_, ok := teeShirtSizes[s]
	return ok
}

// Profile represents a user profile. The ID is the caller's external
// identity; a profile is lazily created on first authenticated access.
// swagger:model Profile
type Profile struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	MainEmail    string    `json:"main_email"`
	TeeShirtSize string    `json:"tee_shirt_size"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProfile returns a new Profile for the given identity with the
// tee-shirt size defaulted to NOT_SPECIFIED.
func NewProfile(id, displayName, mainEmail string, createdAt, updatedAt time.Time) *Profile {
	return &Profile{
		ID:           id,
		DisplayName:  displayName,
		MainEmail:    mainEmail,
		TeeShirtSize: TeeShirtSizeNotSpecified,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// ProfileRepository defines the interface for profile storage.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
}

// ProfileService defines profile business logic. Get lazily creates the
// profile for an identity that has none yet.
type ProfileService interface {
	Get(ctx context.Context, id Identity) (*Profile, error)
	// Save updates displayName and/or teeShirtSize; empty values are ignored.
	Save(ctx context.Context, id Identity, displayName, teeShirtSize string) (*Profile, error)
}

// Identity is the authenticated caller as asserted by the external identity
// provider's token.
type Identity struct {
	UserID   string
	Email    string
	Nickname string
}
