// Package policy decides whether a stored entry may be served without
// recomputation.
package policy

import (
	"time"

	"github.com/unkn0wn-root/rtcache/entry"
)

//go:generate mockgen -destination=../internal/mocks/policy.go -package=mocks . Policy

// Policy is a pure predicate over an entry; it must not mutate the entry.
// An error (or a panic) makes the cache treat the entry as invalid.
type Policy interface {
	Validate(e entry.Entry[any]) (bool, error)
}

// Func adapts a plain predicate.
type Func func(e entry.Entry[any]) (bool, error)

func (f Func) Validate(e entry.Entry[any]) (bool, error) { return f(e) }

// Always accepts every entry; values are computed once and kept.
var Always Policy = Func(func(entry.Entry[any]) (bool, error) { return true, nil })

// Never rejects every entry; every read recomputes and rewrites.
var Never Policy = Func(func(entry.Entry[any]) (bool, error) { return false, nil })

// Window accepts entries no older than MaxElapsed:
// valid iff now <= UpdateTime + MaxElapsed.
type Window struct {
	MaxElapsed time.Duration
	// Now overrides the clock; nil => time.Now.
	Now func() time.Time
}

func NewWindow(maxElapsed time.Duration) Window {
	return Window{MaxElapsed: maxElapsed}
}

func (w Window) Validate(e entry.Entry[any]) (bool, error) {
	now := time.Now()
	if w.Now != nil {
		now = w.Now()
	}
	return !now.After(e.UpdateTime.Add(w.MaxElapsed)), nil
}

// All accepts an entry only if every policy does. The first error wins.
func All(ps ...Policy) Policy {
	return Func(func(e entry.Entry[any]) (bool, error) {
		for _, p := range ps {
			ok, err := p.Validate(e)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	})
}
