package translator

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle returns a copy of t whose every invocation first waits on l.
// A batch call costs one token, a single-key call one token per key.
// Identity and kind are kept, so cached entries stay shared with t.
func Throttle[T any](t Translator[T], l *rate.Limiter) Translator[T] {
	if l == nil {
		return t
	}
	out := t
	if t.one != nil {
		one := t.one
		out.one = func(ctx context.Context, key string) (T, error) {
			if err := l.Wait(ctx); err != nil {
				var zero T
				return zero, err
			}
			return one(ctx, key)
		}
	}
	if t.many != nil {
		many := t.many
		out.many = func(ctx context.Context, keys []string) ([]T, error) {
			if err := l.Wait(ctx); err != nil {
				return nil, err
			}
			return many(ctx, keys)
		}
	}
	return out
}
