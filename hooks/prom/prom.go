// Package prom exports cache events as Prometheus counters.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/unkn0wn-root/rtcache"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "rtcache_"

// Hooks counts events. Identities are bounded by the number of translators,
// so they are safe as a label; storage keys are never used as labels.
type Hooks struct {
	// Cardinality: 4 (probe stages)
	ProbeFailures *prometheus.CounterVec
	StaleEntries  prometheus.Counter

	// Cardinality: number of translator identities
	RequestedKeys   *prometheus.CounterVec
	RefreshedKeys   *prometheus.CounterVec
	TranslateErrors *prometheus.CounterVec
	WriteBackErrors prometheus.Counter
}

var _ rtcache.Hooks = (*Hooks)(nil)

// New registers the counters with reg. A nil reg means prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Hooks {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Hooks{
		ProbeFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "probe_failures_total",
				Help: "Stored entries that could not be read, decoded or validated",
			},
			[]string{"stage"},
		),
		StaleEntries: f.NewCounter(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "stale_entries_total",
				Help: "Stored entries rejected by the validity policy",
			},
		),
		RequestedKeys: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "requested_keys_total",
				Help: "Keys requested in calls that invoked the translator",
			},
			[]string{"identity"},
		),
		RefreshedKeys: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "refreshed_keys_total",
				Help: "Keys recomputed by the translator",
			},
			[]string{"identity"},
		),
		TranslateErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "translate_errors_total",
				Help: "Translator invocations that failed",
			},
			[]string{"identity"},
		),
		WriteBackErrors: f.NewCounter(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "write_back_errors_total",
				Help: "Fresh values that could not be stored",
			},
		),
	}
}

func (h *Hooks) ProbeFailed(_, stage string, _ error) { h.ProbeFailures.WithLabelValues(stage).Inc() }
func (h *Hooks) Stale(string)                         { h.StaleEntries.Inc() }
func (h *Hooks) WriteBackFailed(string, error)        { h.WriteBackErrors.Inc() }

func (h *Hooks) Refreshed(identity string, requested, refreshed int) {
	h.RequestedKeys.WithLabelValues(identity).Add(float64(requested))
	h.RefreshedKeys.WithLabelValues(identity).Add(float64(refreshed))
}

func (h *Hooks) TranslateFailed(identity string, _ int, _ error) {
	h.TranslateErrors.WithLabelValues(identity).Inc()
}
