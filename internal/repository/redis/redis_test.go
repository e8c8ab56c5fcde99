package redis

import (
	"context"
	"fraudGuard/domain"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a reachable server, e.g. REDIS_TEST_ADDR=localhost:6379.
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSuspicionKey(t *testing.T) {
	assert.Equal(t, "suspicion:verdict:abc", suspicionKey("abc"))
}

func TestSuspicionCacheRoundTrip(t *testing.T) {
	client := newTestClient(t)
	cache := NewSuspicionCache(client, time.Minute)
	ctx := context.Background()
	digest := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, suspicionKey(digest)) })

	miss, err := cache.Get(ctx, digest)
	require.NoError(t, err)
	assert.Nil(t, miss)

	score := 70
	require.NoError(t, cache.Set(ctx, digest, &domain.SuspicionReport{
		Classification:  "suspicious",
		Confidence:      "70",
		ConfidenceScore: &score,
		Cached:          true,
	}))

	got, err := cache.Get(ctx, digest)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "suspicious", got.Classification)
	assert.Equal(t, 70, *got.ConfidenceScore)
	assert.False(t, got.Cached)

	ttl, err := client.TTL(ctx, suspicionKey(digest)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
