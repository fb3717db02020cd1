package datahawk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil config defaults to memory", func(t *testing.T) {
		t.Parallel()

		cache, err := NewCacheFromConfig(nil)
		require.NoError(t, err)
		assert.IsType(t, &MemoryCache{}, cache)
	})

	t.Run("memory cache", func(t *testing.T) {
		t.Parallel()

		cache, err := NewCacheFromConfig(&CacheConfig{
			Type:   CacheTypeMemory,
			Memory: &MemoryCacheConfig{MaxSize: 50},
		})
		require.NoError(t, err)
		assert.IsType(t, &MemoryCache{}, cache)
	})

	t.Run("none cache", func(t *testing.T) {
		t.Parallel()

		cache, err := NewCacheFromConfig(&CacheConfig{Type: CacheTypeNone})
		require.NoError(t, err)
		assert.IsType(t, &NoOpCache{}, cache)
	})

	t.Run("nats without config fails", func(t *testing.T) {
		t.Parallel()

		_, err := NewCacheFromConfig(&CacheConfig{Type: CacheTypeNATS})
		assert.ErrorIs(t, err, ErrNATSConfigRequired)
	})

	t.Run("unknown type fails", func(t *testing.T) {
		t.Parallel()

		_, err := NewCacheFromConfig(&CacheConfig{Type: CacheType("redis")})
		assert.ErrorIs(t, err, ErrUnsupportedCache)
	})
}
