// Package storage defines typed entry stores addressed by composite key.
//
// A Storage[S] keeps entries whose values are already in their storage
// representation S (for example []byte for remote stores, any for in-process
// maps). Implementations must be safe for concurrent use and provide per-key
// atomicity for Contains, Get, AddOrUpdate and Remove; concurrent writers to one
// key resolve as last write wins.
package storage

import (
	"context"
	"errors"

	"github.com/unkn0wn-root/rtcache/entry"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("storage: not found")

type Storage[S any] interface {
	Contains(ctx context.Context, key string) (bool, error)
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (entry.Entry[S], error)
	AddOrUpdate(ctx context.Context, e entry.Entry[S]) error
	// Remove reports whether a value was present.
	Remove(ctx context.Context, key string) (bool, error)
	Close(ctx context.Context) error
}
