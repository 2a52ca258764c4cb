package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/unkn0wn-root/rtcache/entry"
	"github.com/unkn0wn-root/rtcache/internal/wire"
	pr "github.com/unkn0wn-root/rtcache/provider"
)

// ErrRejected is returned by AddOrUpdate when the provider refused the write
// (admission policy, memory pressure).
var ErrRejected = errors.New("storage: write rejected by provider")

// Framed stores entries in a byte provider, framing key, update time and
// payload so they survive stores that only keep bytes.
type Framed struct {
	p pr.Provider
}

var _ Storage[[]byte] = (*Framed)(nil)

func NewFramed(p pr.Provider) *Framed {
	return &Framed{p: p}
}

func (s *Framed) Contains(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.p.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (s *Framed) Get(ctx context.Context, key string) (entry.Entry[[]byte], error) {
	raw, ok, err := s.p.Get(ctx, key)
	if err != nil {
		return entry.Entry[[]byte]{}, err
	}
	if !ok {
		return entry.Entry[[]byte]{}, ErrNotFound
	}
	k, at, payload, err := wire.DecodeEntry(raw)
	if err != nil {
		_ = s.p.Del(ctx, key) // self-heal corrupt
		return entry.Entry[[]byte]{}, fmt.Errorf("storage: %q: %w", key, err)
	}
	if k != key {
		_ = s.p.Del(ctx, key)
		return entry.Entry[[]byte]{}, fmt.Errorf("storage: %q holds entry for %q: %w", key, k, wire.ErrCorrupt)
	}
	return entry.New(k, payload, at), nil
}

func (s *Framed) AddOrUpdate(ctx context.Context, e entry.Entry[[]byte]) error {
	b, err := wire.EncodeEntry(e.Key, e.UpdateTime, e.Value)
	if err != nil {
		return err
	}
	ok, err := s.p.Set(ctx, e.Key, b)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRejected
	}
	return nil
}

// Remove is a Get followed by Del; the result is advisory under concurrent writers.
func (s *Framed) Remove(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.p.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := s.p.Del(ctx, key); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Framed) Close(ctx context.Context) error {
	return s.p.Close(ctx)
}
