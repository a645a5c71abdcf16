package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks secondary store hits.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_store_hits_total",
			Help: "Total number of secondary cache store hits",
		},
	)

	// CacheMisses tracks secondary store misses, including absorbed failures.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_store_misses_total",
			Help: "Total number of secondary cache store misses",
		},
	)

	// CacheErrors tracks store errors by operation.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_store_errors_total",
			Help: "Total number of secondary cache store errors",
		},
		[]string{"operation"}, // "get", "set", "delete", "encode", "decode", "init"
	)

	// OperationDuration tracks backend call latency.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "academy_store_operation_duration_seconds",
			Help:    "Secondary cache store backend call duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)
)
