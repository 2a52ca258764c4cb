package revoke

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares revocation marks across processes and survives restarts.
// Optionally, a TTL can be applied to mark keys to prevent unbounded growth;
// it must exceed the longest policy window in use.
type Redis struct {
	rdb redis.UniversalClient
	ns  string        // logical namespace for mark keys
	ttl time.Duration // 0 disables expiry
	now func() time.Time
}

var _ Store = (*Redis)(nil)

func NewRedis(client redis.UniversalClient, namespace string) *Redis {
	return &Redis{rdb: client, ns: namespace, now: time.Now}
}

// NewRedisWithTTL is NewRedis with expiring marks. If ttl <= 0, marks do not expire.
func NewRedisWithTTL(client redis.UniversalClient, namespace string, ttl time.Duration) *Redis {
	return &Redis{rdb: client, ns: namespace, ttl: ttl, now: time.Now}
}

func (s *Redis) key(k string) string { return "revoked:" + s.ns + ":" + k }

// Revoke stores the current time in unix nanoseconds. SET and EXPIRE are
// pipelined in one round-trip when a TTL is configured.
func (s *Redis) Revoke(ctx context.Context, key string) (time.Time, error) {
	now := s.now()
	k := s.key(key)
	v := strconv.FormatInt(now.UnixNano(), 10)

	if s.ttl <= 0 {
		if err := s.rdb.Set(ctx, k, v, 0).Err(); err != nil {
			return time.Time{}, err
		}
		return now, nil
	}

	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, k, v, 0)
		p.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}
	return now, nil
}

func (s *Redis) RevokedAt(ctx context.Context, key string) (time.Time, error) {
	res, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return parseMark(res)
}

func (s *Redis) RevokedAtMany(ctx context.Context, keys []string) (map[string]time.Time, error) {
	if len(keys) == 0 {
		return map[string]time.Time{}, nil
	}
	rk := make([]string, len(keys))
	for i, k := range keys {
		rk[i] = s.key(k)
	}
	vals, err := s.rdb.MGet(ctx, rk...).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]time.Time, len(keys))
	for i, v := range vals {
		if v == nil {
			out[keys[i]] = time.Time{}
			continue
		}
		at, err := parseMark(fmt.Sprint(v))
		if err != nil {
			return nil, fmt.Errorf("revoke mark at %s: %w", keys[i], err)
		}
		out[keys[i]] = at
	}
	return out, nil
}

// Cleanup is not applicable (Redis handles expiry if TTL is set).
func (s *Redis) Cleanup(time.Duration) {}

// Close closes the underlying Redis client.
func (s *Redis) Close(context.Context) error { return s.rdb.Close() }

func parseMark(s string) (time.Time, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("redis revoke parse: %w", err)
	}
	return time.Unix(0, n), nil
}
