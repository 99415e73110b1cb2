package cache

import (
	"fmt"
	"log"

	"conferencecentral/internal/domain"
)

// Config holds configuration for creating a cache.
type Config struct {
	Provider string
	// Path is the badger data directory; empty means in-memory badger.
	Path string
}

// New creates a cache from config. Provider "badger" uses an embedded badger
// store; "memory" or unknown uses a plain in-process map.
func New(config Config) (domain.Cache, func() error, error) {
	switch config.Provider {
	case "badger":
		c, err := newBadgerCache(config.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger cache: %w", err)
		}
		return c, c.Close, nil
	case "memory":
		return newMemoryCache(), func() error { return nil }, nil
	default:
		log.Printf("[CACHE] Unknown cache provider %q, using memory", config.Provider)
		return newMemoryCache(), func() error { return nil }, nil
	}
}
