// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    ProbeFailedEvery: 10, // sample logs: ~every 10th probe failure
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	c, _ := rtcache.New(rtcache.Options{
//	    Drive:  drive.Memory(),
//	    Policy: policy.NewWindow(time.Minute),
//	    Hooks:  hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/rtcache"
)

// Hooks forwards events to inner on a worker pool. Events are dropped when
// the queue is full; the cache never waits on a hook.
type Hooks struct {
	inner   rtcache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ rtcache.Hooks = (*Hooks)(nil)

func New(inner rtcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events after Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default: // drop
		h.dropped.Add(1)
	}
}

func (h *Hooks) ProbeFailed(k, stage string, err error) {
	h.try(func() { h.inner.ProbeFailed(k, stage, err) })
}
func (h *Hooks) Stale(k string) { h.try(func() { h.inner.Stale(k) }) }
func (h *Hooks) Refreshed(id string, requested, refreshed int) {
	h.try(func() { h.inner.Refreshed(id, requested, refreshed) })
}
func (h *Hooks) TranslateFailed(id string, n int, err error) {
	h.try(func() { h.inner.TranslateFailed(id, n, err) })
}
func (h *Hooks) WriteBackFailed(k string, err error) {
	h.try(func() { h.inner.WriteBackFailed(k, err) })
}
