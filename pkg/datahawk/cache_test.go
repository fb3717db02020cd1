package datahawk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		cache := NewMemoryCache(10)

		err := cache.Set(ctx, "key", &CacheEntry{Value: []byte("value"), StoredAt: time.Now()})
		require.NoError(t, err)

		entry, err := cache.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("value"), entry.Value)
		assert.True(t, cache.Has(ctx, "key"))
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()

		cache := NewMemoryCache(10)

		_, err := cache.Get(ctx, "absent")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		t.Parallel()

		cache := NewMemoryCache(10)

		err := cache.Set(ctx, "key", &CacheEntry{
			Value:    []byte("value"),
			StoredAt: time.Now().Add(-time.Minute),
			TTL:      time.Second,
		})
		require.NoError(t, err)

		_, err = cache.Get(ctx, "key")
		assert.ErrorIs(t, err, ErrCacheMiss)
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("zero TTL never expires", func(t *testing.T) {
		t.Parallel()

		cache := NewMemoryCache(10)

		err := cache.Set(ctx, "key", &CacheEntry{
			Value:    []byte("value"),
			StoredAt: time.Now().Add(-24 * time.Hour),
		})
		require.NoError(t, err)

		_, err = cache.Get(ctx, "key")
		assert.NoError(t, err)
	})

	t.Run("delete and clear", func(t *testing.T) {
		t.Parallel()

		cache := NewMemoryCache(10)

		require.NoError(t, cache.Set(ctx, "a", &CacheEntry{Value: []byte("1"), StoredAt: time.Now()}))
		require.NoError(t, cache.Set(ctx, "b", &CacheEntry{Value: []byte("2"), StoredAt: time.Now()}))

		require.NoError(t, cache.Delete(ctx, "a"))
		assert.False(t, cache.Has(ctx, "a"))
		assert.True(t, cache.Has(ctx, "b"))

		require.NoError(t, cache.Clear(ctx))
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("eviction keeps cache at max size", func(t *testing.T) {
		t.Parallel()

		cache := NewMemoryCache(2)

		require.NoError(t, cache.Set(ctx, "a", &CacheEntry{Value: []byte("1"), StoredAt: time.Now()}))
		require.NoError(t, cache.Set(ctx, "b", &CacheEntry{Value: []byte("2"), StoredAt: time.Now()}))
		require.NoError(t, cache.Set(ctx, "c", &CacheEntry{Value: []byte("3"), StoredAt: time.Now()}))

		assert.LessOrEqual(t, cache.Len(), 2)
		assert.True(t, cache.Has(ctx, "c"))
	})

	t.Run("expired entries evicted before live ones", func(t *testing.T) {
		t.Parallel()

		cache := NewMemoryCache(2)

		require.NoError(t, cache.Set(ctx, "stale", &CacheEntry{
			Value:    []byte("1"),
			StoredAt: time.Now().Add(-time.Minute),
			TTL:      time.Second,
		}))
		require.NoError(t, cache.Set(ctx, "live", &CacheEntry{Value: []byte("2"), StoredAt: time.Now()}))
		require.NoError(t, cache.Set(ctx, "new", &CacheEntry{Value: []byte("3"), StoredAt: time.Now()}))

		assert.True(t, cache.Has(ctx, "live"))
		assert.True(t, cache.Has(ctx, "new"))
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := NewNoOpCache()

	require.NoError(t, cache.Set(ctx, "key", &CacheEntry{Value: []byte("value")}))

	_, err := cache.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "key"))
	assert.NoError(t, cache.Delete(ctx, "key"))
	assert.NoError(t, cache.Clear(ctx))
}

func TestCacheEntry_Expired(t *testing.T) {
	t.Parallel()

	assert.False(t, (&CacheEntry{StoredAt: time.Now(), TTL: time.Minute}).Expired())
	assert.True(t, (&CacheEntry{StoredAt: time.Now().Add(-time.Hour), TTL: time.Minute}).Expired())
	assert.False(t, (&CacheEntry{StoredAt: time.Now().Add(-time.Hour)}).Expired())
}
