package gocache

import (
	"context"
	"errors"
	"testing"
	"time"

	gc "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/rtcache/entry"
	"github.com/unkn0wn-root/rtcache/storage"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(Config{})

	_, err := s.Get(ctx, "k")
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	at := time.Unix(10, 0)
	require.NoError(t, s.AddOrUpdate(ctx, entry.New[any]("k", "v", at)))

	ok, err := s.Contains(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got.Value)
	assert.Equal(t, at, got.UpdateTime)
	assert.Equal(t, 1, s.ItemCount())

	removed, err := s.Remove(ctx, "k")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, _ = s.Remove(ctx, "k")
	assert.False(t, removed)
}

func TestForeignValueIsDropped(t *testing.T) {
	ctx := context.Background()
	raw := gc.New(gc.NoExpiration, 0)
	raw.Set("k", 42, gc.DefaultExpiration)
	s := Wrap(raw)

	_, err := s.Get(ctx, "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, storage.ErrNotFound))
	ok, _ := s.Contains(ctx, "k")
	assert.False(t, ok, "foreign value should be removed")
}

func TestExpirationReclaims(t *testing.T) {
	ctx := context.Background()
	s := New(Config{DefaultExpiration: 20 * time.Millisecond})
	require.NoError(t, s.AddOrUpdate(ctx, entry.New[any]("k", 1, time.Now())))
	time.Sleep(40 * time.Millisecond)
	ok, _ := s.Contains(ctx, "k")
	assert.False(t, ok)
}
