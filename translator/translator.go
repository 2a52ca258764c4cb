// Package translator describes value producers: the expensive key -> value
// computations the cache sits in front of.
//
// A Translator may offer a single-key path, a batch path, or both, and may
// carry its own identity (the namespace suffix of its cache keys) and a
// registration kind used by the cache to pick a drive and policy. Batch paths
// must return values in input key order.
package translator

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotTranslator is returned by Of for values with no translate method.
	ErrNotTranslator = errors.New("translator: value implements neither Translate nor TranslateMany")
	// ErrResultLength reports a batch result whose length differs from its input.
	ErrResultLength = errors.New("translator: result length does not match key count")
)

// Capability tags which paths a translator offers.
type Capability uint8

const (
	Simplex Capability = 1 << iota
	Vectorized

	Optimized = Simplex | Vectorized
)

func (c Capability) String() string {
	switch c {
	case Simplex:
		return "simplex"
	case Vectorized:
		return "vectorized"
	case Optimized:
		return "optimized"
	}
	return "none"
}

type KeyFunc[T any] func(ctx context.Context, key string) (T, error)

type KeysFunc[T any] func(ctx context.Context, keys []string) ([]T, error)

// Translator is a capability-tagged producer. The zero value has no
// capability and is rejected by the cache.
type Translator[T any] struct {
	one         KeyFunc[T]
	many        KeysFunc[T]
	identity    string
	hasIdentity bool
	kind        string
}

// Func builds a simplex translator.
func Func[T any](fn KeyFunc[T]) Translator[T] {
	return Translator[T]{one: fn}
}

// Batch builds a vectorized translator.
func Batch[T any](fn KeysFunc[T]) Translator[T] {
	return Translator[T]{many: fn}
}

// Dual builds an optimized translator; either func may be nil.
func Dual[T any](one KeyFunc[T], many KeysFunc[T]) Translator[T] {
	return Translator[T]{one: one, many: many}
}

// WithIdentity returns a copy that reports id as its identity.
func (t Translator[T]) WithIdentity(id string) Translator[T] {
	t.identity, t.hasIdentity = id, true
	return t
}

// WithKind returns a copy registered under kind.
func (t Translator[T]) WithKind(kind string) Translator[T] {
	t.kind = kind
	return t
}

func (t Translator[T]) Capabilities() Capability {
	var c Capability
	if t.one != nil {
		c |= Simplex
	}
	if t.many != nil {
		c |= Vectorized
	}
	return c
}

// Identity returns the self-reported identity, if any. "" is a valid identity.
func (t Translator[T]) Identity() (string, bool) { return t.identity, t.hasIdentity }

// Kind returns the registration kind; "" means unregistered.
func (t Translator[T]) Kind() string { return t.kind }

// TranslateMany computes values for keys in order. A single key goes through
// the simplex path when available; otherwise the batch path is preferred and
// a simplex-only translator is called once per key.
func (t Translator[T]) TranslateMany(ctx context.Context, keys []string) ([]T, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	var (
		out []T
		err error
	)
	switch {
	case t.one != nil && (t.many == nil || len(keys) == 1):
		out = make([]T, len(keys))
		for i, k := range keys {
			if out[i], err = t.one(ctx, k); err != nil {
				return nil, err
			}
		}
	case t.many != nil:
		if out, err = t.many(ctx, keys); err != nil {
			return nil, err
		}
	default:
		return nil, ErrNotTranslator
	}
	if len(out) != len(keys) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrResultLength, len(out), len(keys))
	}
	return out, nil
}

// Translate computes one value.
func (t Translator[T]) Translate(ctx context.Context, key string) (T, error) {
	if t.one != nil {
		return t.one(ctx, key)
	}
	out, err := t.TranslateMany(ctx, []string{key})
	if err != nil {
		var zero T
		return zero, err
	}
	return out[0], nil
}

// Single is implemented by types offering the simplex path.
type Single[T any] interface {
	Translate(ctx context.Context, key string) (T, error)
}

// Many is implemented by types offering the vectorized path.
type Many[T any] interface {
	TranslateMany(ctx context.Context, keys []string) ([]T, error)
}

// Identifier is implemented by self-identifying producers.
type Identifier interface {
	Identity() string
}

// Registered is implemented by producers that declare a registration kind.
type Registered interface {
	Kind() string
}

// Of adopts a user type implementing Single, Many or both, plus optionally
// Identifier and Registered.
func Of[T any](v any) (Translator[T], error) {
	if t, ok := v.(Translator[T]); ok {
		return t, nil
	}
	var t Translator[T]
	if s, ok := v.(Single[T]); ok {
		t.one = s.Translate
	}
	if m, ok := v.(Many[T]); ok {
		t.many = m.TranslateMany
	}
	if t.one == nil && t.many == nil {
		return Translator[T]{}, fmt.Errorf("%w: %T", ErrNotTranslator, v)
	}
	if id, ok := v.(Identifier); ok {
		t = t.WithIdentity(id.Identity())
	}
	if r, ok := v.(Registered); ok {
		t = t.WithKind(r.Kind())
	}
	return t, nil
}
