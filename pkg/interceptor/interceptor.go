package interceptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/academy-cache/pkg/conditional"
	"github.com/Sternrassler/academy-cache/pkg/policy"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Interceptor applies registered policies to responses.
type Interceptor struct {
	registry *policy.Registry
	logger   zerolog.Logger
}

// New creates an Interceptor reading policies from registry.
func New(registry *policy.Registry, logger zerolog.Logger) *Interceptor {
	if registry == nil {
		panic("policy registry cannot be nil")
	}
	return &Interceptor{
		registry: registry,
		logger:   logger.With().Str("component", "interceptor").Logger(),
	}
}

// Handle adapts a payload handler to http.Handler. The policy attached to
// method and pattern is resolved now, not per request.
func (i *Interceptor) Handle(method, pattern string, h Handler) http.Handler {
	p, _ := i.registry.Lookup(method, pattern)
	route := method + " " + pattern

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := h(r)
		if err != nil {
			i.writeError(w, route, err)
			return
		}

		encoded, err := conditional.Serialize(res.Body)
		if err != nil {
			EncodeErrors.WithLabelValues(route).Inc()
			i.logger.Error().Err(err).Str("route", route).Msg("Failed to encode response")
			i.writeError(w, route, errors.Wrap(err, "encode response"))
			return
		}

		if res.Header == nil {
			res.Header = make(http.Header)
		}
		if res.Header.Get("Content-Type") == "" {
			res.Header.Set("Content-Type", contentTypeJSON)
		}

		resp := Apply(r, res, encoded, p)
		i.observe(r, route, p, res.Status, resp)
		if err := write(w, resp); err != nil {
			i.logger.Warn().Err(err).Str("route", route).Msg("Failed to write response")
		}
	})
}

// Middleware applies policies to arbitrary handlers. Only GET responses are
// buffered; the policy is looked up after routing using the chi route
// pattern, or the request path when no chi context is present.
func (i *Interceptor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		bw := newBufferedWriter()
		next.ServeHTTP(bw, r)

		pattern := routePattern(r)
		p, _ := i.registry.LookupRequest(r, pattern)
		route := r.Method + " " + pattern

		res := Result{Status: bw.status(), Header: bw.header}
		if p != nil && conditional.Applies(r.Method, res.Status) {
			res.Body = decodeJSON(bw.header, bw.body.Bytes())
		}
		resp := Apply(r, res, bw.body.Bytes(), p)
		i.observe(r, route, p, res.Status, resp)
		if err := write(w, resp); err != nil {
			i.logger.Warn().Err(err).Str("route", route).Msg("Failed to write response")
		}
	})
}

// decodeJSON returns the decoded body of a JSON response so Apply can read
// its update timestamp. Other content types and invalid JSON yield nil.
func decodeJSON(header http.Header, raw []byte) any {
	if len(raw) == 0 || !strings.Contains(header.Get("Content-Type"), "json") {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func (i *Interceptor) observe(r *http.Request, route string, p *policy.Policy, status int, resp Response) {
	if status == 0 {
		status = http.StatusOK
	}

	switch {
	case !conditional.Applies(r.Method, status):
		Responses.WithLabelValues(route, resultSkipped).Inc()
	case p == nil:
		Responses.WithLabelValues(route, resultNoPolicy).Inc()
	case resp.Status == http.StatusNotModified:
		Responses.WithLabelValues(route, resultNotModified).Inc()
		i.logger.Debug().
			Str("route", route).
			Str("etag", resp.Header.Get(conditional.HeaderETag)).
			Msg("304 Not Modified")
	default:
		Responses.WithLabelValues(route, resultFresh).Inc()
		i.logger.Debug().
			Str("route", route).
			Str("etag", resp.Header.Get(conditional.HeaderETag)).
			Str("cache_control", resp.Header.Get(HeaderCacheControl)).
			Msg("Cache headers applied")
	}
}

func (i *Interceptor) writeError(w http.ResponseWriter, route string, err error) {
	status := http.StatusInternalServerError
	message := http.StatusText(status)

	var herr *Error
	if errors.As(err, &herr) {
		status = herr.Status
		message = herr.Message
	}

	if status >= http.StatusInternalServerError {
		i.logger.Error().Err(err).Str("route", route).Int("status_code", status).Msg("Handler failed")
	} else {
		i.logger.Debug().Err(err).Str("route", route).Int("status_code", status).Msg("Handler rejected request")
	}

	WriteJSON(w, status, map[string]string{"error": message})
}

// WriteJSON writes v as a JSON response without any cache processing.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
