package interceptor

import (
	"bytes"
	"net/http"
)

// bufferedWriter holds a complete response in memory so the interceptor can
// decide status and headers after the handler finished.
//
// It does not implement http.Flusher or http.Hijacker; streaming handlers
// must not be wrapped.
type bufferedWriter struct {
	header http.Header
	code   int
	body   bytes.Buffer
}

func newBufferedWriter() *bufferedWriter {
	return &bufferedWriter{header: make(http.Header)}
}

func (w *bufferedWriter) Header() http.Header {
	return w.header
}

func (w *bufferedWriter) WriteHeader(code int) {
	if w.code == 0 {
		w.code = code
	}
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	if w.code == 0 {
		w.code = http.StatusOK
	}
	return w.body.Write(b)
}

func (w *bufferedWriter) status() int {
	if w.code == 0 {
		return http.StatusOK
	}
	return w.code
}
