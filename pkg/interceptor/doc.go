// Package interceptor applies route cache policies and conditional
// validation to outgoing responses.
//
// The decision itself is the pure function Apply: given the request, the
// handler result, its serialized body and the attached policy it returns the
// status, headers and body to send. Two adapters feed it:
//
//   - Handle wraps a payload-producing Handler. The policy is resolved once,
//     when the route is registered.
//   - Middleware wraps any http.Handler. GET responses are buffered, the
//     policy is resolved from the matched chi route pattern and the same
//     decision is applied to the buffered bytes.
//
// Only GET requests answered with 200 are touched. Routes without an attached
// policy pass through unchanged. Caching never turns a successful response
// into an error.
//
// # Metrics
//
//   - academy_http_cache_responses_total{route,result} - intercepted responses
//     by result (fresh, not_modified, skipped, no_policy)
//   - academy_http_cache_encode_errors_total{route} - payloads that could not
//     be encoded
package interceptor
