package interceptor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultFresh       = "fresh"
	resultNotModified = "not_modified"
	resultSkipped     = "skipped"
	resultNoPolicy    = "no_policy"
)

var (
	// Responses counts intercepted responses by route and result.
	Responses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_http_cache_responses_total",
			Help: "Total number of responses seen by the cache interceptor",
		},
		[]string{"route", "result"},
	)

	// EncodeErrors counts handler payloads that could not be encoded.
	EncodeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_http_cache_encode_errors_total",
			Help: "Total number of handler payloads that failed to encode",
		},
		[]string{"route"},
	)
)
