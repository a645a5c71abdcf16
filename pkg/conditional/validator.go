package conditional

import (
	"net/http"
	"time"
)

// Header names and values written by the validator.
const (
	HeaderETag         = "ETag"
	HeaderVary         = "Vary"
	HeaderLastModified = "Last-Modified"
	HeaderIfNoneMatch  = "If-None-Match"

	// VaryValue is sent on every cacheable GET response.
	VaryValue = "Accept-Encoding, Accept-Language"
)

// Outcome is the validator decision for one response.
type Outcome struct {
	// Applied is false when the response is not a 200 GET or the body could
	// not be serialized. Nothing must be written in that case.
	Applied bool

	// ETag is the quoted digest of the serialized body.
	ETag string

	// Status is the status to send: the original one or 304.
	Status int

	// Header holds ETag, Vary and optionally Last-Modified.
	Header http.Header

	// SuppressBody is true when Status is 304. The body must not be written.
	SuppressBody bool

	// Err is the serialization error that caused the validator to skip.
	Err error
}

// NotModified reports whether the outcome is a 304.
func (o Outcome) NotModified() bool {
	return o.Status == http.StatusNotModified
}

// Applies reports whether conditional validation runs for the pair.
func Applies(method string, status int) bool {
	return method == http.MethodGet && status == http.StatusOK
}

// Evaluate serializes body and runs EvaluateBytes. Serialization failures
// skip validation instead of failing the response.
func Evaluate(method string, status int, body any, ifNoneMatch string) Outcome {
	if !Applies(method, status) {
		return Outcome{Status: status}
	}

	raw, err := Serialize(body)
	if err != nil {
		return Outcome{Status: status, Err: err}
	}

	lastModified, _ := LastModified(body)
	return EvaluateBytes(method, status, raw, lastModified, ifNoneMatch)
}

// EvaluateBytes computes validators for an already serialized body.
// A zero lastModified omits the Last-Modified header.
func EvaluateBytes(method string, status int, raw []byte, lastModified time.Time, ifNoneMatch string) Outcome {
	if !Applies(method, status) {
		return Outcome{Status: status}
	}

	etag := ETag(raw)
	header := make(http.Header, 3)
	header.Set(HeaderETag, etag)
	header.Set(HeaderVary, VaryValue)
	if !lastModified.IsZero() {
		header.Set(HeaderLastModified, lastModified.UTC().Format(http.TimeFormat))
	}

	out := Outcome{
		Applied: true,
		ETag:    etag,
		Status:  status,
		Header:  header,
	}
	if Matches(ifNoneMatch, etag) {
		out.Status = http.StatusNotModified
		out.SuppressBody = true
	}
	return out
}
