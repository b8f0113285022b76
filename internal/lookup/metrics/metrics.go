package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the lookup domain. Constructed
// once in main; nil receivers are tolerated by the recording helpers so unit
// tests can skip registration entirely.
type Metrics struct {
	LookupsTotal     *prometheus.CounterVec
	LookupDuration   prometheus.Histogram
	TraversalDepth   prometheus.Histogram
	RecordsPerLookup prometheus.Histogram
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
}

// New creates and registers all lookup metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		LookupsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "deeplink_lookups_total",
			Help: "Total number of lookups by outcome",
		}, []string{"result"}),
		LookupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "deeplink_lookup_duration_seconds",
			Help:    "End-to-end lookup latency including traversal and aggregation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		TraversalDepth: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "deeplink_traversal_depth_hops",
			Help:    "BFS hop depth reached per lookup",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		}),
		RecordsPerLookup: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "deeplink_records_per_lookup",
			Help:    "Accumulated records per lookup after dedup",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deeplink_profile_cache_hits_total",
			Help: "Consolidated profile cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deeplink_profile_cache_misses_total",
			Help: "Consolidated profile cache misses",
		}),
	}
}

// ObserveLookup records the outcome and latency of one lookup.
func (m *Metrics) ObserveLookup(result string, seconds float64) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(result).Inc()
	m.LookupDuration.Observe(seconds)
}

// ObserveTraversal records the traversal shape of one lookup.
func (m *Metrics) ObserveTraversal(depth, records int) {
	if m == nil {
		return
	}
	m.TraversalDepth.Observe(float64(depth))
	m.RecordsPerLookup.Observe(float64(records))
}

// RecordCacheHit counts a profile cache hit.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// RecordCacheMiss counts a profile cache miss.
func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}
