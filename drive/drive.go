// Package drive is the storage boundary seen by the cache core.
//
// A Drive stores entries under opaque composite keys. Values cross the
// boundary type-erased: AddOrUpdate receives whatever the translator produced
// and Get hands back either that value or a Decoder that materializes it into
// the type requested by the caller (see Decode).
package drive

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/rtcache/entry"
	"github.com/unkn0wn-root/rtcache/serializer"
	"github.com/unkn0wn-root/rtcache/storage"
	"github.com/unkn0wn-root/rtcache/storage/memory"
)

//go:generate mockgen -destination=../internal/mocks/drive.go -package=mocks . Drive

// Drive must be safe for concurrent use.
type Drive interface {
	Contains(ctx context.Context, key string) (bool, error)
	// Get is only meaningful after Contains reported true; for a missing key
	// implementations return an error.
	Get(ctx context.Context, key string) (entry.Entry[any], error)
	AddOrUpdate(ctx context.Context, e entry.Entry[any]) error
}

// Remover is implemented by drives that can delete entries.
type Remover interface {
	Remove(ctx context.Context, key string) (bool, error)
}

// Decoder is a value still in storage form.
type Decoder interface {
	Decode(dst any) error
}

// Decode turns a value returned by Drive.Get into a T.
func Decode[T any](v any) (T, error) {
	if d, ok := v.(Decoder); ok {
		var t T
		if err := d.Decode(&t); err != nil {
			var zero T
			return zero, err
		}
		return t, nil
	}
	if t, ok := v.(T); ok {
		return t, nil
	}
	var zero T
	return zero, &serializer.MismatchError{
		Want: reflectTypeOf[T](),
		Err:  fmt.Errorf("drive returned %T", v),
	}
}

type stored[S any] struct {
	ser serializer.Serializer[S]
	raw S
}

func (s stored[S]) Decode(dst any) error { return s.ser.Deserialize(s.raw, dst) }

// Storage adapts a typed Storage plus a Serializer into a Drive.
type Storage[S any] struct {
	st  storage.Storage[S]
	ser serializer.Serializer[S]
}

var (
	_ Drive   = (*Storage[any])(nil)
	_ Remover = (*Storage[any])(nil)
)

func New[S any](st storage.Storage[S], ser serializer.Serializer[S]) *Storage[S] {
	return &Storage[S]{st: st, ser: ser}
}

// Memory is a drive over the in-process concurrent map with pass-through values.
func Memory() *Storage[any] {
	return New[any](memory.New[any](), serializer.Identity{})
}

func (d *Storage[S]) Contains(ctx context.Context, key string) (bool, error) {
	return d.st.Contains(ctx, key)
}

func (d *Storage[S]) Get(ctx context.Context, key string) (entry.Entry[any], error) {
	e, err := d.st.Get(ctx, key)
	if err != nil {
		return entry.Entry[any]{}, err
	}
	return entry.Entry[any]{
		Key:        e.Key,
		Value:      stored[S]{ser: d.ser, raw: e.Value},
		UpdateTime: e.UpdateTime,
	}, nil
}

func (d *Storage[S]) AddOrUpdate(ctx context.Context, e entry.Entry[any]) error {
	raw, err := d.ser.Serialize(e.Value)
	if err != nil {
		return fmt.Errorf("drive: serialize %q: %w", e.Key, err)
	}
	return d.st.AddOrUpdate(ctx, entry.New(e.Key, raw, e.UpdateTime))
}

func (d *Storage[S]) Remove(ctx context.Context, key string) (bool, error) {
	return d.st.Remove(ctx, key)
}

func (d *Storage[S]) Close(ctx context.Context) error {
	return d.st.Close(ctx)
}
