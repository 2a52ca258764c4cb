// Package memory is the reference in-process storage: a concurrent map with
// no expiry and no capacity bound.
package memory

import (
	"context"
	"sync"

	"github.com/unkn0wn-root/rtcache/entry"
	"github.com/unkn0wn-root/rtcache/storage"
)

type Store[S any] struct {
	m sync.Map // string -> entry.Entry[S]
}

var _ storage.Storage[any] = (*Store[any])(nil)

func New[S any]() *Store[S] {
	return &Store[S]{}
}

func (s *Store[S]) Contains(_ context.Context, key string) (bool, error) {
	_, ok := s.m.Load(key)
	return ok, nil
}

func (s *Store[S]) Get(_ context.Context, key string) (entry.Entry[S], error) {
	v, ok := s.m.Load(key)
	if !ok {
		return entry.Entry[S]{}, storage.ErrNotFound
	}
	return v.(entry.Entry[S]), nil
}

func (s *Store[S]) AddOrUpdate(_ context.Context, e entry.Entry[S]) error {
	s.m.Store(e.Key, e)
	return nil
}

func (s *Store[S]) Remove(_ context.Context, key string) (bool, error) {
	_, ok := s.m.LoadAndDelete(key)
	return ok, nil
}

// Len walks the map; intended for tests and diagnostics.
func (s *Store[S]) Len() int {
	n := 0
	s.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (s *Store[S]) Close(context.Context) error {
	s.m.Clear()
	return nil
}
