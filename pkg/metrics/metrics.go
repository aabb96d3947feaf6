package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Custom histogram buckets for remote call latencies ranging from
	// milliseconds to multi-second recommendation queries
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21}

	// Remote recommendation service metrics
	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "remote_client_operation_duration_seconds",
			Help:    "Remote service operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	RemoteRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_client_operation_total",
			Help: "Total number of remote service operations",
		},
		[]string{"operation", "status"},
	)

	// Cache metrics for the profile snapshot cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	// Orchestrator metrics
	SessionMounts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_mounts_total",
			Help: "Total number of session mounts",
		},
		[]string{"status"},
	)

	StaleResponsesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stale_responses_dropped_total",
			Help: "Recommendation responses discarded because a newer request superseded them",
		},
	)
)

// MeasureDuration returns the elapsed time since start in seconds
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
