package revoke

import (
	"context"
	"sync"
	"time"
)

// Local keeps revocation marks in-process.
// Optional cleanup loop prunes marks older than the retention window.
type Local struct {
	mu     sync.RWMutex
	marks  map[string]time.Time
	now    func() time.Time
	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

var _ Store = (*Local)(nil)

// NewLocal starts a cleanup loop when both cleanupInterval and retention are positive.
// Retention must exceed the longest policy window in use, or a pruned mark
// would let a revoked entry become valid again.
func NewLocal(cleanupInterval, retention time.Duration) *Local {
	s := &Local{
		marks: make(map[string]time.Time),
		now:   time.Now,
	}
	if cleanupInterval > 0 && retention > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-s.ticker.C:
					s.Cleanup(retention)
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

func (s *Local) Revoke(_ context.Context, k string) (time.Time, error) {
	now := s.now()
	s.mu.Lock()
	if prev, ok := s.marks[k]; !ok || now.After(prev) {
		s.marks[k] = now
	} else {
		now = prev
	}
	s.mu.Unlock()
	return now, nil
}

func (s *Local) RevokedAt(_ context.Context, k string) (time.Time, error) {
	s.mu.RLock()
	at := s.marks[k]
	s.mu.RUnlock()
	return at, nil
}

// RevokedAtMany acquires the read lock once and reads all requested keys.
func (s *Local) RevokedAtMany(_ context.Context, ks []string) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(ks))
	s.mu.RLock()
	for _, k := range ks {
		out[k] = s.marks[k]
	}
	s.mu.RUnlock()
	return out, nil
}

func (s *Local) Cleanup(retention time.Duration) {
	if retention <= 0 {
		return
	}
	cutoff := s.now().Add(-retention)

	s.mu.Lock()
	for k, at := range s.marks {
		if at.Before(cutoff) {
			delete(s.marks, k)
		}
	}
	s.mu.Unlock()
}

func (s *Local) Close(_ context.Context) error {
	s.once.Do(func() {
		if s.stopCh != nil {
			close(s.stopCh)
			s.ticker.Stop()
			s.wg.Wait()
		}
	})
	return nil
}
