package rtcache

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/rtcache/drive"
	"github.com/unkn0wn-root/rtcache/entry"
	"github.com/unkn0wn-root/rtcache/policy"
	"github.com/unkn0wn-root/rtcache/translator"
)

// ProduceFunc computes values for keys, in key order.
type ProduceFunc[T any] func(ctx context.Context, keys []string) ([]T, error)

// Get returns the value for key, computing it through tr when the stored
// entry is missing or invalid. It is GetMany over a single key.
func Get[T any](ctx context.Context, c *Cache, key string, tr translator.Translator[T], opts ...CallOption) (T, error) {
	out, err := GetMany(ctx, c, []string{key}, tr, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return out[0], nil
}

// GetMany returns one value per key, in key order. tr is called at most once,
// with exactly the keys whose entries were missing, invalid or unreadable.
func GetMany[T any](ctx context.Context, c *Cache, keys []string, tr translator.Translator[T], opts ...CallOption) ([]T, error) {
	if c == nil {
		return nil, ErrNilCache
	}
	if keys == nil {
		return nil, ErrNilKeys
	}
	if tr.Capabilities() == 0 {
		return nil, ErrNoTranslator
	}
	id, hasID := tr.Identity()
	b, err := c.bind(tr.Kind(), id, hasID, opts)
	if err != nil {
		return nil, err
	}
	return fetch(ctx, c, keys, b, tr.TranslateMany)
}

// Fetch is the engine behind GetMany with every collaborator explicit.
// No resolution happens: drive and policy are used as given.
func Fetch[T any](ctx context.Context, c *Cache, keys []string, identity string, produce ProduceFunc[T], d drive.Drive, p policy.Policy) ([]T, error) {
	switch {
	case c == nil:
		return nil, ErrNilCache
	case keys == nil:
		return nil, ErrNilKeys
	case produce == nil:
		return nil, ErrNoTranslator
	case d == nil:
		return nil, ErrNoDrive
	case p == nil:
		return nil, ErrNoPolicy
	}
	return fetch(ctx, c, keys, bound{identity: identity, drive: d, policy: p}, produce)
}

// Peek reports the stored value for key without ever calling the translator.
// ok is false when the entry is missing, unreadable or rejected by the policy.
func Peek[T any](ctx context.Context, c *Cache, key string, tr translator.Translator[T], opts ...CallOption) (v T, ok bool, err error) {
	if c == nil {
		return v, false, ErrNilCache
	}
	id, hasID := tr.Identity()
	b, err := c.bind(tr.Kind(), id, hasID, opts)
	if err != nil {
		return v, false, err
	}
	v, st := probe[T](ctx, c, b, CompositeKey(key, b.identity))
	return v, st == cached, nil
}

// Invalidate removes the stored entry for key from the resolved drive.
// It reports whether an entry was present.
func Invalidate[T any](ctx context.Context, c *Cache, key string, tr translator.Translator[T], opts ...CallOption) (bool, error) {
	if c == nil {
		return false, ErrNilCache
	}
	id, hasID := tr.Identity()
	b, err := c.bind(tr.Kind(), id, hasID, opts)
	if err != nil {
		return false, err
	}
	rm, ok := b.drive.(drive.Remover)
	if !ok {
		return false, ErrNotRemovable
	}
	k := CompositeKey(key, b.identity)
	removed, err := rm.Remove(ctx, k)
	if err != nil {
		return false, fmt.Errorf("rtcache: invalidate %q: %w", k, err)
	}
	c.log.Debug("invalidated key", Fields{"key": k, "removed": removed})
	return removed, nil
}

type state uint8

const (
	absent state = iota
	cached
	stale // present but invalid, or unreadable
)

func fetch[T any](ctx context.Context, c *Cache, keys []string, b bound, produce func(context.Context, []string) ([]T, error)) ([]T, error) {
	out := make([]T, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	// probe
	storageKeys := make([]string, len(keys))
	var refresh []int
	for i, k := range keys {
		storageKeys[i] = CompositeKey(k, b.identity)
		v, st := probe[T](ctx, c, b, storageKeys[i])
		if st == cached {
			out[i] = v
			continue
		}
		refresh = append(refresh, i)
	}
	if len(refresh) == 0 {
		return out, nil
	}

	// refresh: one producer call, relative order preserved
	missing := make([]string, len(refresh))
	for j, i := range refresh {
		missing[j] = keys[i]
	}
	fresh, err := produce(ctx, missing)
	if err == nil && len(fresh) != len(missing) {
		err = fmt.Errorf("%w: got %d, want %d", ErrResultLength, len(fresh), len(missing))
	}
	if err != nil {
		c.hooks.TranslateFailed(b.identity, len(missing), err)
		c.log.Debug("translate failed", Fields{"identity": b.identity, "keys": len(missing), "err": err})
		return nil, &TranslateError{Identity: b.identity, Keys: missing, Err: err}
	}
	c.hooks.Refreshed(b.identity, len(keys), len(missing))

	// write back: one timestamp for the whole call
	now := c.now()
	for j, i := range refresh {
		out[i] = fresh[j]
		e := entry.New[any](storageKeys[i], any(fresh[j]), now)
		if _, err := guard(func() (struct{}, error) { return struct{}{}, b.drive.AddOrUpdate(ctx, e) }); err != nil {
			c.hooks.WriteBackFailed(e.Key, err)
			c.log.Warn("write-back failed; value returned uncached", Fields{"key": e.Key, "err": err})
		}
	}
	return out, nil
}

// probe classifies one stored entry. Drive, decode and policy failures,
// including panics, degrade to stale so the key gets recomputed.
func probe[T any](ctx context.Context, c *Cache, b bound, key string) (T, state) {
	var zero T

	present, err := guard(func() (bool, error) { return b.drive.Contains(ctx, key) })
	if err != nil {
		c.probeFailed(key, StageContains, err)
		return zero, stale
	}
	if !present {
		return zero, absent
	}

	stored, err := guard(func() (entry.Entry[any], error) { return b.drive.Get(ctx, key) })
	if err != nil {
		c.probeFailed(key, StageGet, err)
		return zero, stale
	}

	v, err := guard(func() (T, error) { return drive.Decode[T](stored.Value) })
	if err != nil {
		c.probeFailed(key, StageDecode, err)
		return zero, stale
	}

	e := entry.New(key, v, stored.UpdateTime)
	valid, err := guard(func() (bool, error) { return b.policy.Validate(e.Erase()) })
	if err != nil {
		c.probeFailed(key, StageValidate, err)
		return zero, stale
	}
	if !valid {
		c.hooks.Stale(key)
		c.log.Debug("stale entry", Fields{"key": key, "updated": stored.UpdateTime})
		return zero, stale
	}
	return v, cached
}

func (c *Cache) probeFailed(key, stage string, err error) {
	c.hooks.ProbeFailed(key, stage, err)
	c.log.Debug("probe failed; recomputing", Fields{"key": key, "stage": stage, "err": err})
}
