// Package keys encodes and decodes the opaque entity references exposed on
// the wire. A key is base64url("<kind>/<uuid>"); it is reversible but not
// meaningful to clients.
package keys

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kinds of keyed entities.
const (
	KindConference = "conference"
	KindSession    = "session"
	KindSpeaker    = "speaker"
)

// ErrInvalidKey means the key string is empty, not decodable, or of the
// wrong kind. It is a bad request, never a not-found.
var ErrInvalidKey = errors.New("invalid key")

// Encode returns the opaque key for an entity id of the given kind.
func Encode(kind, id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(kind + "/" + id))
}

// Decode parses an opaque key and returns the entity id, enforcing the
// expected kind. Leading/trailing whitespace is tolerated so that visually
// identical keys cannot smuggle in duplicates.
func Decode(kind, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	raw, err := base64.RawURLEncoding.DecodeString(key)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	gotKind, id, ok := strings.Cut(string(raw), "/")
	if !ok || gotKind != kind {
		return "", fmt.Errorf("%w: %q is not a %s key", ErrInvalidKey, key, kind)
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return id, nil
}
