package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"conferencecentral/internal/domain"
)

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()

	caches := map[string]func(t *testing.T) domain.Cache{
		"memory": func(t *testing.T) domain.Cache {
			return newMemoryCache()
		},
		"badger in-memory": func(t *testing.T) domain.Cache {
			c, err := newBadgerCache("")
			require.NoError(t, err)
			t.Cleanup(func() { _ = c.Close() })
			return c
		},
	}

	for name, newCache := range caches {
		t.Run(name, func(t *testing.T) {
			c := newCache(t)

			_, ok, err := c.Get(ctx, "missing")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, c.Set(ctx, "k", "v1"))
			got, ok, err := c.Get(ctx, "k")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "v1", got)

			require.NoError(t, c.Set(ctx, "k", "v2"))
			got, _, err = c.Get(ctx, "k")
			require.NoError(t, err)
			require.Equal(t, "v2", got)

			require.NoError(t, c.Delete(ctx, "k"))
			_, ok, err = c.Get(ctx, "k")
			require.NoError(t, err)
			require.False(t, ok)

			// Deleting an absent key is fine.
			require.NoError(t, c.Delete(ctx, "k"))
		})
	}
}
