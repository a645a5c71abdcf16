package interceptor

import (
	"fmt"
	"net/http"
)

// Result is what a route handler produces.
type Result struct {
	// Status defaults to 200 when zero.
	Status int

	// Header holds handler supplied headers. May be nil.
	Header http.Header

	// Body is serialized as JSON unless it is []byte, json.RawMessage or
	// string.
	Body any
}

// OK returns a 200 result carrying body.
func OK(body any) Result {
	return Result{Status: http.StatusOK, Body: body}
}

// Response is the fully decided response.
type Response struct {
	Status int
	Header http.Header
	// Body is nil for 304 responses.
	Body []byte
}

// Handler produces a result for a request.
type Handler func(r *http.Request) (Result, error)

// Error is a handler error carrying the status to send.
type Error struct {
	Status  int
	Message string
	Err     error
}

// NewError creates an Error with the given status and message.
func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}
