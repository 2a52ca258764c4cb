package redis

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only when RTCACHE_REDIS_ADDR is set.
func liveClient(t *testing.T) *goredis.Client {
	t.Helper()
	addr := os.Getenv("RTCACHE_REDIS_ADDR")
	if addr == "" {
		t.Skip("RTCACHE_REDIS_ADDR not set")
	}
	c := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := c.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	return c
}

func TestNewRequiresClient(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, ErrNilClient)
}

func TestProviderGetSetDel(t *testing.T) {
	ctx := context.Background()
	p, err := New(Config{
		Client:      liveClient(t),
		Prefix:      "rtcache:test:" + time.Now().Format(time.RFC3339Nano) + ":",
		TTL:         time.Minute,
		CloseClient: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(ctx) })

	_, ok, err := p.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := p.Set(ctx, "k", []byte("v"))
	require.NoError(t, err)
	assert.True(t, stored)

	v, ok, err := p.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	require.NoError(t, p.Del(ctx, "k"))
	_, ok, err = p.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
