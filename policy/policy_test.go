package policy

import (
	"errors"
	"testing"
	"time"

	"github.com/unkn0wn-root/rtcache/entry"
)

func TestWindowBoundaries(t *testing.T) {
	base := time.Unix(1000, 0)
	e := entry.New[any]("k", 1, base)

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"fresh", base, true},
		{"inside", base.Add(30 * time.Second), true},
		{"edge is inclusive", base.Add(time.Minute), true},
		{"past edge", base.Add(time.Minute + time.Nanosecond), false},
		{"clock behind", base.Add(-time.Hour), true},
	}
	for _, tc := range cases {
		w := Window{MaxElapsed: time.Minute, Now: func() time.Time { return tc.now }}
		got, err := w.Validate(e)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestWindowUsesWallClock(t *testing.T) {
	w := NewWindow(time.Hour)
	if ok, _ := w.Validate(entry.New[any]("k", 1, time.Now())); !ok {
		t.Fatalf("entry written now should be valid")
	}
	if ok, _ := w.Validate(entry.New[any]("k", 1, time.Now().Add(-2*time.Hour))); ok {
		t.Fatalf("entry written 2h ago should be invalid")
	}
}

func TestAlwaysNever(t *testing.T) {
	e := entry.New[any]("k", 1, time.Time{})
	if ok, _ := Always.Validate(e); !ok {
		t.Fatalf("Always rejected")
	}
	if ok, _ := Never.Validate(e); ok {
		t.Fatalf("Never accepted")
	}
}

func TestAll(t *testing.T) {
	e := entry.New[any]("k", 1, time.Now())
	if ok, _ := All().Validate(e); !ok {
		t.Fatalf("empty All should accept")
	}
	if ok, _ := All(Always, Never).Validate(e); ok {
		t.Fatalf("All with Never should reject")
	}
	boom := errors.New("boom")
	failing := Func(func(entry.Entry[any]) (bool, error) { return true, boom })
	if ok, err := All(Always, failing).Validate(e); ok || !errors.Is(err, boom) {
		t.Fatalf("All should surface the first error: ok=%v err=%v", ok, err)
	}
}
