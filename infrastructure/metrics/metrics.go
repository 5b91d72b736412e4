package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every observation the consensus core emits: a duration
// sample per validation stage, counters for ML-caused rejections and
// verifier errors, and a gauge tracking the verification-cache hit ratio.
type Metrics struct {
	registry *prometheus.Registry

	BlockValidationSeconds prometheus.Histogram
	MLAuthSeconds          prometheus.Histogram
	MLCacheHitRatio        prometheus.Gauge
	BlocksRejectedML       prometheus.Counter
	MLCacheHits            prometheus.Counter
	MLCacheMisses          prometheus.Counter
	MLVerifierErrors       prometheus.Counter
	BlocksProposed         prometheus.Counter

	cacheHits   uint64
	cacheMisses uint64
}

// New creates a Metrics instance with its own registry, so tests can hold
// independent instances without collector name collisions.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		BlockValidationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "consensus_block_validation_seconds",
			Help: "Time spent validating a candidate block, both stages combined.",
		}),
		MLAuthSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "consensus_ml_auth_seconds",
			Help: "Time spent in the ML-authenticity validation stage.",
		}),
		MLCacheHitRatio: factory.NewGauge(prometheus.GaugeOpts{
			Name: "consensus_ml_cache_hit_ratio",
			Help: "Cumulative verification-cache hit ratio.",
		}),
		BlocksRejectedML: factory.NewCounter(prometheus.CounterOpts{
			Name: "consensus_blocks_rejected_ml",
			Help: "Number of blocks rejected by the ML-authenticity stage.",
		}),
		MLCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "consensus_ml_cache_hits_total",
			Help: "Number of verification-cache hits.",
		}),
		MLCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "consensus_ml_cache_misses_total",
			Help: "Number of verification-cache misses.",
		}),
		MLVerifierErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "consensus_ml_verifier_errors_total",
			Help: "Number of verifier calls that failed with a timeout, transport or protocol error.",
		}),
		BlocksProposed: factory.NewCounter(prometheus.CounterOpts{
			Name: "consensus_blocks_proposed_total",
			Help: "Number of blocks accepted through proposal.",
		}),
	}
}

// ObserveCacheHit records a verification-cache hit and refreshes the
// hit-ratio gauge.
func (m *Metrics) ObserveCacheHit() {
	m.MLCacheHits.Inc()
	atomic.AddUint64(&m.cacheHits, 1)
	m.updateHitRatio()
}

// ObserveCacheMiss records a verification-cache miss and refreshes the
// hit-ratio gauge.
func (m *Metrics) ObserveCacheMiss() {
	m.MLCacheMisses.Inc()
	atomic.AddUint64(&m.cacheMisses, 1)
	m.updateHitRatio()
}

func (m *Metrics) updateHitRatio() {
	hits := atomic.LoadUint64(&m.cacheHits)
	misses := atomic.LoadUint64(&m.cacheMisses)
	total := hits + misses
	if total == 0 {
		return
	}
	m.MLCacheHitRatio.Set(float64(hits) / float64(total))
}

// Handler returns an http.Handler rendering this instance's registry in
// the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Start serves the /metrics endpoint on the given address in a separate
// goroutine.
func (m *Metrics) Start(listenAddress string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	spawn("metrics.Start", func() {
		log.Infof("Metrics server listening on %s", listenAddress)
		err := http.ListenAndServe(listenAddress, mux)
		if err != nil {
			log.Errorf("Metrics server exited: %s", err)
		}
	})
}
