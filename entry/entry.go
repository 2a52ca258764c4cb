// Package entry defines the value object stored by drives.
package entry

import "time"

// Entry is a cached value together with the composite key it lives under and
// the time it was produced. Entries are replaced wholesale, never mutated.
type Entry[T any] struct {
	Key        string
	Value      T
	UpdateTime time.Time
}

// New builds an entry stamped with at.
func New[T any](key string, value T, at time.Time) Entry[T] {
	return Entry[T]{Key: key, Value: value, UpdateTime: at}
}

// Erase drops the static value type so the entry can cross a drive or policy boundary.
func (e Entry[T]) Erase() Entry[any] {
	return Entry[any]{Key: e.Key, Value: e.Value, UpdateTime: e.UpdateTime}
}

// Age reports how long ago the entry was produced relative to now.
func (e Entry[T]) Age(now time.Time) time.Duration {
	return now.Sub(e.UpdateTime)
}
