package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, mc.Set(ctx, "k", payload{Name: "eurusd", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, mc.Get(ctx, "k", &got))
	assert.Equal(t, "eurusd", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var got string
	err := mc.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var got string
	assert.ErrorIs(t, mc.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", 0))
	require.NoError(t, mc.Delete(ctx, "k"))

	var got string
	assert.ErrorIs(t, mc.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestMemoryCacheEviction(t *testing.T) {
	mc := NewMemoryCache(WithMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, mc.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, mc.Set(ctx, "c", 3, time.Minute))

	hits := 0
	for _, key := range []string{"a", "b", "c"} {
		var got int
		if mc.Get(ctx, key, &got) == nil {
			hits++
		}
	}
	assert.Equal(t, 2, hits)
}

func TestMemoryCacheEvictionPrefersExpiringEntries(t *testing.T) {
	mc := NewMemoryCache(WithMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "pinned", 1, 0))
	require.NoError(t, mc.Set(ctx, "short", 2, time.Minute))
	require.NoError(t, mc.Set(ctx, "long", 3, time.Hour))

	var got int
	assert.NoError(t, mc.Get(ctx, "pinned", &got), "TTL-less entry survives eviction")
	assert.ErrorIs(t, mc.Get(ctx, "short", &got), ErrCacheMiss, "nearest expiry is evicted first")
	assert.NoError(t, mc.Get(ctx, "long", &got))
}
