package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/unkn0wn-root/rtcache"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestHooks_RedactsKeys(t *testing.T) {
	var buf bytes.Buffer
	h := New(newLogger(&buf), Options{})

	h.WriteBackFailed("user:42#profile", errors.New("full"))

	out := buf.String()
	require.Contains(t, out, "rtcache.write_back_failed")
	require.NotContains(t, out, "user:42")
	require.Contains(t, out, "err=full")
}

func TestHooks_CustomRedactor(t *testing.T) {
	var buf bytes.Buffer
	h := New(newLogger(&buf), Options{Redact: strings.ToUpper})

	h.Stale("abc")
	require.Contains(t, buf.String(), "key=ABC")
}

func TestHooks_SamplesProbeFailures(t *testing.T) {
	var buf bytes.Buffer
	h := New(newLogger(&buf), Options{ProbeFailedEvery: 3})

	for i := 0; i < 9; i++ {
		h.ProbeFailed("k", rtcache.StageDecode, errors.New("bad"))
	}
	require.Equal(t, 3, strings.Count(buf.String(), "rtcache.probe_failed"))
}

func TestHooks_NilLogger(t *testing.T) {
	h := New(nil, Options{})
	h.Refreshed("", 1, 1)
	h.TranslateFailed("", 1, errors.New("x"))
	h.ProbeFailed("k", rtcache.StageGet, nil)
}
