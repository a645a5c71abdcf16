package server

import (
	"net/http"

	"github.com/Sternrassler/academy-cache/pkg/interceptor"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("ok")); err != nil {
		s.logger.Warn().Err(err).Msg("Error writing health check response")
	}
}

// handleReady reports store reachability. The store is optional, so an
// unreachable store marks the service degraded but still ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ready", "cache": "disabled"}

	if s.Store.Enabled() {
		if err := s.Store.Ping(r.Context()); err != nil {
			s.logger.Warn().Err(err).Msg("Cache store unreachable")
			status["status"] = "degraded"
			status["cache"] = "unreachable"
		} else {
			status["cache"] = "ok"
		}
	}

	interceptor.WriteJSON(w, http.StatusOK, status)
}
