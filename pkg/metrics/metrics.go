// Package metrics provides the Prometheus registry and scrape handler for the
// academy API. Metrics are defined in their respective packages (interceptor,
// cache) to keep them modular and avoid circular dependencies.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry. All metrics are registered
// via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Handler returns the /metrics scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// HTTP Cache Metrics (pkg/interceptor):
//   - academy_http_cache_responses_total{route, result} (Counter): Responses seen by the
//     interceptor; result is fresh, not_modified, skipped or no_policy
//   - academy_http_cache_encode_errors_total{route} (Counter): Payloads that failed to encode
//
// Secondary Store Metrics (pkg/cache):
//   - academy_store_hits_total (Counter): Store hits
//   - academy_store_misses_total (Counter): Store misses, including absorbed failures
//   - academy_store_errors_total{operation} (Counter): Backend, encode and decode errors
//   - academy_store_operation_duration_seconds{operation} (Histogram): Backend call latency
//
// Example Prometheus Queries:
//
//   # 304 Rate
//   sum(rate(academy_http_cache_responses_total{result="not_modified"}[5m])) /
//   sum(rate(academy_http_cache_responses_total{result=~"fresh|not_modified"}[5m]))
//
//   # Store Hit Rate
//   sum(rate(academy_store_hits_total[5m])) /
//   (sum(rate(academy_store_hits_total[5m])) + sum(rate(academy_store_misses_total[5m])))
//
//   # Store Error Rate
//   sum by (operation) (rate(academy_store_errors_total[5m]))
//
//   # P95 Store Latency
//   histogram_quantile(0.95, rate(academy_store_operation_duration_seconds_bucket[5m]))
