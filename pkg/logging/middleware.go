package logging

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// RequestLogger returns middleware that attaches logger to each request
// context and logs one line per completed request.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status_code", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request handled")
	})
	withLogger := hlog.NewHandler(logger)
	withRequestID := hlog.RequestIDHandler("request_id", "X-Request-Id")

	return func(next http.Handler) http.Handler {
		return withLogger(withRequestID(access(next)))
	}
}
