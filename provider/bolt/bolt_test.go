package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	p, err := Open(Config{Path: path})
	require.NoError(t, err)

	_, ok, err := p.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Set(ctx, "k", []byte("v1"))
	require.NoError(t, err)
	assert.True(t, ok)

	got, ok, err := p.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, p.Del(ctx, "k"))
	require.NoError(t, p.Del(ctx, "k"), "deleting a missing key is not an error")
	_, ok, _ = p.Get(ctx, "k")
	assert.False(t, ok)
	require.NoError(t, p.Close(ctx))
}

func TestProviderSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	p, err := Open(Config{Path: path, Bucket: "b"})
	require.NoError(t, err)
	_, err = p.Set(ctx, "k", []byte("persisted"))
	require.NoError(t, err)
	require.NoError(t, p.Close(ctx))

	p2, err := Open(Config{Path: path, Bucket: "b"})
	require.NoError(t, err)
	defer p2.Close(ctx)

	got, ok, err := p2.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("persisted"), got)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}
