package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/rtcache"
	"github.com/unkn0wn-root/rtcache/internal/util"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ProbeFailedEvery uint64
	StaleEvery       uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	probeCtr atomic.Uint64
	staleCtr atomic.Uint64
}

var _ rtcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	return util.Redact(k)
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) ProbeFailed(storageKey, stage string, err error) {
	if h.l == nil || !sample(h.opts.ProbeFailedEvery, &h.probeCtr) {
		return
	}
	h.l.Debug("rtcache.probe_failed",
		"key", h.redact(storageKey),
		"stage", stage,
		"err", err)
}

func (h *Hooks) Stale(storageKey string) {
	if h.l == nil || !sample(h.opts.StaleEvery, &h.staleCtr) {
		return
	}
	h.l.Debug("rtcache.stale",
		"key", h.redact(storageKey))
}

func (h *Hooks) Refreshed(identity string, requested, refreshed int) {
	if h.l == nil {
		return
	}
	h.l.Debug("rtcache.refreshed",
		"identity", identity,
		"requested", requested,
		"refreshed", refreshed)
}

func (h *Hooks) TranslateFailed(identity string, keys int, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("rtcache.translate_failed",
		"identity", identity,
		"keys", keys,
		"err", err)
}

func (h *Hooks) WriteBackFailed(storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("rtcache.write_back_failed",
		"key", h.redact(storageKey),
		"err", err)
}
