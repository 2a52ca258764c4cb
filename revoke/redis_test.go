package revoke

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only when RTCACHE_REDIS_ADDR is set.
func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("RTCACHE_REDIS_ADDR")
	if addr == "" {
		t.Skip("RTCACHE_REDIS_ADDR not set")
	}
	c := redis.NewClient(&redis.Options{Addr: addr})
	if err := c.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	return c
}

func TestRedisRevoke(t *testing.T) {
	ctx := context.Background()
	s := NewRedisWithTTL(redisClient(t), "test:"+t.Name()+time.Now().String(), time.Minute)
	t.Cleanup(func() { _ = s.Close(ctx) })

	at, err := s.RevokedAt(ctx, "k")
	require.NoError(t, err)
	assert.True(t, at.IsZero())

	marked, err := s.Revoke(ctx, "k")
	require.NoError(t, err)

	got, err := s.RevokedAtMany(ctx, []string{"k", "missing"})
	require.NoError(t, err)
	assert.True(t, got["k"].Equal(marked))
	assert.True(t, got["missing"].IsZero())
}
