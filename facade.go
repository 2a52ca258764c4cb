package rtcache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/rtcache/drive"
	"github.com/unkn0wn-root/rtcache/policy"
	"github.com/unkn0wn-root/rtcache/translator"
)

var (
	defaultOnce sync.Once
	defaultPtr  atomic.Pointer[Cache]
)

// Default returns the process-wide cache. Unless replaced with SetDefault it
// is an in-memory drive with a DefaultMaxAge window policy.
func Default() *Cache {
	defaultOnce.Do(func() {
		if defaultPtr.Load() != nil {
			return
		}
		c, err := New(Options{Drive: drive.Memory(), Policy: policy.NewWindow(DefaultMaxAge)})
		if err != nil {
			panic(err) // both collaborators are non-nil
		}
		defaultPtr.CompareAndSwap(nil, c)
	})
	return defaultPtr.Load()
}

// SetDefault replaces the process-wide cache. Fetches already running on the
// previous cache are unaffected.
func SetDefault(c *Cache) {
	if c == nil {
		panic("rtcache: SetDefault(nil)")
	}
	defaultPtr.Store(c)
}

// Lookup is Get against Default().
func Lookup[T any](ctx context.Context, key string, tr translator.Translator[T], opts ...CallOption) (T, error) {
	return Get(ctx, Default(), key, tr, opts...)
}

// LookupMany is GetMany against Default().
func LookupMany[T any](ctx context.Context, keys []string, tr translator.Translator[T], opts ...CallOption) ([]T, error) {
	return GetMany(ctx, Default(), keys, tr, opts...)
}
