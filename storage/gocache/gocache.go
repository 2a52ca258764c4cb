// Package gocache stores entries in patrickmn/go-cache. Values are kept as-is
// (no serialization); the optional janitor only reclaims memory of entries
// older than DefaultExpiration and never affects what the cache policy sees
// as valid.
package gocache

import (
	"context"
	"fmt"
	"time"

	gc "github.com/patrickmn/go-cache"

	"github.com/unkn0wn-root/rtcache/entry"
	"github.com/unkn0wn-root/rtcache/storage"
)

type Store struct {
	c *gc.Cache
}

var _ storage.Storage[any] = (*Store)(nil)

type Config struct {
	// DefaultExpiration for stored items; 0 => never expire.
	DefaultExpiration time.Duration `yaml:"default_expiration"`
	// CleanupInterval of the janitor; 0 => no janitor.
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

func New(cfg Config) *Store {
	exp := cfg.DefaultExpiration
	if exp <= 0 {
		exp = gc.NoExpiration
	}
	return &Store{c: gc.New(exp, cfg.CleanupInterval)}
}

// Wrap adopts an existing go-cache instance.
func Wrap(c *gc.Cache) *Store { return &Store{c: c} }

func (s *Store) Contains(_ context.Context, key string) (bool, error) {
	_, ok := s.c.Get(key)
	return ok, nil
}

func (s *Store) Get(_ context.Context, key string) (entry.Entry[any], error) {
	v, ok := s.c.Get(key)
	if !ok {
		return entry.Entry[any]{}, storage.ErrNotFound
	}
	e, ok := v.(entry.Entry[any])
	if !ok {
		// foreign write under our key
		s.c.Delete(key)
		return entry.Entry[any]{}, fmt.Errorf("gocache: %q holds %T", key, v)
	}
	return e, nil
}

func (s *Store) AddOrUpdate(_ context.Context, e entry.Entry[any]) error {
	s.c.SetDefault(e.Key, e)
	return nil
}

// Remove is a Get followed by Delete; the result is advisory under concurrent writers.
func (s *Store) Remove(_ context.Context, key string) (bool, error) {
	_, ok := s.c.Get(key)
	s.c.Delete(key)
	return ok, nil
}

// ItemCount includes items that have expired but not yet been cleaned up.
func (s *Store) ItemCount() int { return s.c.ItemCount() }

func (s *Store) Close(context.Context) error {
	s.c.Flush()
	return nil
}
