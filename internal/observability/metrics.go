// SPDX-License-Identifier: EPL-2.0

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mix outcomes, used as the outcome label of voxmix_mix_total.
const (
	OutcomeMixed     = "mixed"
	OutcomeVoiceOnly = "voice_only"
	OutcomeFallback  = "fallback"
	OutcomeFailed    = "failed"
)

// Metrics records mix activity. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	mixes         *prometheus.CounterVec
	fetchFailures *prometheus.CounterVec
	renderSeconds prometheus.Histogram
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		mixes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voxmix_mix_total",
			Help: "Mix requests by outcome",
		}, []string{"outcome"}),

		fetchFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voxmix_fetch_failures_total",
			Help: "Failed asset fetches by reason",
		}, []string{"reason"}),

		renderSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "voxmix_render_seconds",
			Help:    "Time spent rendering and encoding a mix",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) RecordMix(outcome string) {
	if m == nil {
		return
	}
	m.mixes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordFetchFailure(reason string) {
	if m == nil {
		return
	}
	m.fetchFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveRender(d time.Duration) {
	if m == nil {
		return
	}
	m.renderSeconds.Observe(d.Seconds())
}
