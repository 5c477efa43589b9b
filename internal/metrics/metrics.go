// Package metrics exposes Prometheus instrumentation for the reaper.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	buildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lockreap_build_info",
		Help: "Build information, always 1.",
	}, []string{"version"})

	passesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lockreap_reaper_passes_total",
		Help: "Reaper passes by strategy and outcome.",
	}, []string{"strategy", "outcome"})

	reapedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lockreap_reaped_locks_total",
		Help: "Orphaned lock digests reclaimed.",
	})

	passDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lockreap_reaper_pass_duration_seconds",
		Help:    "Wall-clock duration of one reaper pass.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	registrySize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lockreap_registry_size",
		Help: "Lock digests registered, sampled after each pass.",
	})
)

// Init sets the build info gauge.
func Init(version string) {
	buildInfo.WithLabelValues(version).Set(1)
}

// ObservePass records one finished reaper pass.
func ObservePass(strategy, outcome string, reaped int64, d time.Duration) {
	passesTotal.WithLabelValues(strategy, outcome).Inc()
	passDuration.Observe(d.Seconds())
	if reaped > 0 {
		reapedTotal.Add(float64(reaped))
	}
}

// SetRegistrySize records the current registry cardinality.
func SetRegistrySize(n int64) {
	registrySize.Set(float64(n))
}
