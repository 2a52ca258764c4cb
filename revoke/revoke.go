// Package revoke invalidates cached entries without touching the drive.
//
// A Store remembers, per composite key, the last time the key was revoked.
// Policy rejects any entry produced at or before that time, so the next read
// recomputes it. With the Redis store the revocation is visible to every
// process sharing the drive.
package revoke

import (
	"context"
	"time"

	"github.com/unkn0wn-root/rtcache/entry"
	"github.com/unkn0wn-root/rtcache/policy"
)

// Store abstracts where revocation marks live.
// Use Local (in-process) or Redis (shared across replicas).
type Store interface {
	// Revoke marks key as revoked now and returns the recorded time.
	Revoke(ctx context.Context, key string) (time.Time, error)
	// RevokedAt returns the last revocation time; zero if never revoked.
	RevokedAt(ctx context.Context, key string) (time.Time, error)
	// RevokedAtMany returns revocation times for many keys; missing => zero.
	RevokedAtMany(ctx context.Context, keys []string) (map[string]time.Time, error)
	// Cleanup prunes marks older than retention if applicable (no-op for Redis).
	Cleanup(retention time.Duration)
	Close(ctx context.Context) error
}

// Policy rejects entries produced at or before their key's revocation mark.
// Store lookups are bounded by timeout (0 => 1s); a failed lookup surfaces as
// an error, which the cache treats as invalid.
func Policy(s Store, timeout time.Duration) policy.Policy {
	if timeout <= 0 {
		timeout = time.Second
	}
	return policy.Func(func(e entry.Entry[any]) (bool, error) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		at, err := s.RevokedAt(ctx, e.Key)
		if err != nil {
			return false, err
		}
		return at.IsZero() || e.UpdateTime.After(at), nil
	})
}
