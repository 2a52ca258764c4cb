package prom

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/unkn0wn-root/rtcache"
)

func TestHooks_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)

	h.ProbeFailed("k1", rtcache.StageDecode, errors.New("bad"))
	h.ProbeFailed("k2", rtcache.StageDecode, errors.New("bad"))
	h.ProbeFailed("k3", rtcache.StageGet, errors.New("gone"))
	h.Stale("k4")
	h.Refreshed("#len", 5, 3)
	h.TranslateFailed("#len", 2, errors.New("down"))
	h.WriteBackFailed("k5", errors.New("full"))

	require.Equal(t, 2.0, testutil.ToFloat64(h.ProbeFailures.WithLabelValues(rtcache.StageDecode)))
	require.Equal(t, 1.0, testutil.ToFloat64(h.ProbeFailures.WithLabelValues(rtcache.StageGet)))
	require.Equal(t, 1.0, testutil.ToFloat64(h.StaleEntries))
	require.Equal(t, 5.0, testutil.ToFloat64(h.RequestedKeys.WithLabelValues("#len")))
	require.Equal(t, 3.0, testutil.ToFloat64(h.RefreshedKeys.WithLabelValues("#len")))
	require.Equal(t, 1.0, testutil.ToFloat64(h.TranslateErrors.WithLabelValues("#len")))
	require.Equal(t, 1.0, testutil.ToFloat64(h.WriteBackErrors))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 7, n)
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	require.Panics(t, func() { New(reg) })
}
