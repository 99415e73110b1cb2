package domain

import "context"

// Cache keys for the announcement strings.
const (
	CacheKeyAnnouncements   = "RECENT_ANNOUNCEMENTS"
	CacheKeyFeaturedSpeaker = "FEATURED_SPEAKER"
)

// Cache is a process-wide best-effort key/value cache. It is never
// authoritative: readers treat a miss as "no value", not as an error.
type Cache interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// AnnouncementService recomputes and serves the cached announcement strings.
type AnnouncementService interface {
	// RefreshAnnouncement recomputes the nearly-sold-out announcement and
	// returns the cached value ("" when nothing qualifies).
	RefreshAnnouncement(ctx context.Context) (string, error)
	// GetAnnouncement returns the cached announcement, "" on a miss.
	GetAnnouncement(ctx context.Context) (string, error)
	// SetFeaturedSpeaker recomputes the featured-speaker entry for a
	// (conference, speaker) pair. The prior value is left untouched when the
	// speaker has fewer than two sessions in the conference.
	SetFeaturedSpeaker(ctx context.Context, conferenceID, speakerID string) (string, error)
	// GetFeaturedSpeaker returns the cached featured-speaker string, "" on a miss.
	GetFeaturedSpeaker(ctx context.Context) (string, error)
}
