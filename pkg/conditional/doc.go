// Package conditional implements content-derived validators for GET
// responses.
//
// For every successful GET response it computes a strong ETag from the
// deterministically serialized body, adds Vary and, when the payload carries
// an update timestamp, Last-Modified. A request whose If-None-Match equals the
// computed ETag is answered with 304 Not Modified and no body.
//
// # Basic Usage
//
//	out := conditional.Evaluate(r.Method, http.StatusOK, course, r.Header.Get("If-None-Match"))
//	if out.Applied {
//		for k, v := range out.Header {
//			w.Header()[k] = v
//		}
//	}
//	if out.SuppressBody {
//		w.WriteHeader(out.Status) // 304, nothing else is written
//		return
//	}
//
// # Determinism
//
// Bodies are serialized with encoding/json, which orders map keys, so two
// structurally identical payloads always hash to the same ETag. Raw []byte,
// json.RawMessage and string bodies are hashed as-is.
//
// Validators are computed fresh for every response and never stored.
package conditional
