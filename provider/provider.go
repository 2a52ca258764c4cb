// Package provider defines the byte store abstraction that backs the framed
// storage in package storage.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding, no mutation). Values written by rtcache are framed
// entries; foreign writes under the same keys are treated as corruption and
// recomputed by the cache.
package provider

import (
	"context"
	"errors"
)

// ErrClosed is returned by providers that detect use after Close.
var ErrClosed = errors.New("provider: closed")

// Provider is a minimal byte store.
// Must be safe for concurrent use with per-key atomic Get/Set/Del.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value, replacing any previous value (last write wins).
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte) (ok bool, err error)

	// Del removes a key. Deleting a missing key is not an error.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
