package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these onto the JSON error envelope; anything else is an internal error.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// Registration and wishlist state-machine conflicts.
	ErrAlreadyRegistered = errors.New("already registered for this conference")
	ErrNoSeatsAvailable  = errors.New("there are no seats available")
	ErrAlreadyInWishlist = errors.New("session is already in the wishlist")

	// ErrDuplicateSpeakerEmail is raised by the store-level unique constraint
	// on speaker emails.
	ErrDuplicateSpeakerEmail = errors.New("email is already registered with a speaker")

	// Record-mapper coercion failures.
	ErrMalformedDate = errors.New("malformed date, want YYYY-MM-DD")
	ErrMalformedTime = errors.New("malformed time, want HH:MM")

	// ErrDataIntegrity means a persisted value no longer maps onto its wire
	// representation (e.g. an unknown tee-shirt size string). Fail closed.
	ErrDataIntegrity = errors.New("persisted data failed integrity check")
)
