package revoke

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unkn0wn-root/rtcache/entry"
)

func TestLocalRevokedAtManyZeroForMissing(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	at, err := s.Revoke(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.RevokedAtMany(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if !got["a"].IsZero() || !got["b"].Equal(at) || !got["c"].IsZero() {
		t.Fatalf("got=%v want a=0,b=%v,c=0", got, at)
	}
}

func TestLocalRevokeIsMonotonic(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	now := time.Unix(100, 0)
	s.now = func() time.Time { return now }
	first, _ := s.Revoke(ctx, "k")

	now = time.Unix(50, 0) // clock stepped back
	second, _ := s.Revoke(ctx, "k")
	if !second.Equal(first) {
		t.Fatalf("mark moved backwards: %v -> %v", first, second)
	}
}

func TestLocalCleanupPrunesOld(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	now := time.Unix(1000, 0)
	s.now = func() time.Time { return now }
	if _, err := s.Revoke(ctx, "old"); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Second)
	s.Cleanup(time.Second)

	at, _ := s.RevokedAt(ctx, "old")
	if !at.IsZero() {
		t.Fatalf("expected pruned -> zero, got %v", at)
	}
}

func TestLocalCloseIdempotent(t *testing.T) {
	s := NewLocal(time.Millisecond, time.Hour)
	_ = s.Close(context.Background())
	_ = s.Close(context.Background())
}

func TestPolicyRejectsRevokedEntries(t *testing.T) {
	ctx := context.Background()
	s := NewLocal(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })
	p := Policy(s, 0)

	written := time.Unix(100, 0)
	e := entry.New[any]("k", 1, written)

	if ok, err := p.Validate(e); err != nil || !ok {
		t.Fatalf("never revoked should be valid: ok=%v err=%v", ok, err)
	}

	s.now = func() time.Time { return written.Add(time.Second) }
	if _, err := s.Revoke(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := p.Validate(e); ok {
		t.Fatalf("entry written before revoke should be invalid")
	}

	fresh := entry.New[any]("k", 2, written.Add(2*time.Second))
	if ok, _ := p.Validate(fresh); !ok {
		t.Fatalf("entry written after revoke should be valid")
	}
}

type failingStore struct{ Store }

func (failingStore) RevokedAt(context.Context, string) (time.Time, error) {
	return time.Time{}, errors.New("backend down")
}

func TestPolicySurfacesStoreErrors(t *testing.T) {
	p := Policy(failingStore{}, time.Millisecond)
	if ok, err := p.Validate(entry.New[any]("k", 1, time.Now())); ok || err == nil {
		t.Fatalf("expected error and invalid, got ok=%v err=%v", ok, err)
	}
}
