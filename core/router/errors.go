package router

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNilRouteSet reports a nil route set passed to New.
	ErrNilRouteSet = errors.New("router: nil route set")
	// ErrNilHandler reports a nil application handler passed to New.
	ErrNilHandler = errors.New("router: nil handler")
	// ErrNilResponse reports a handler that returned no response.
	ErrNilResponse = errors.New("router: nil response")
)

// statusCode is an unexported interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// defaultErrorHandler resolves the status from the error when it carries
// one and writes a plain-text body. Decode errors from the route set all
// implement StatusCode.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	http.Error(w, err.Error(), status)
}

// PanicError is implemented by the error a recovered panic is wrapped in,
// giving custom error handlers access to the panic value and stack trace.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

// Error implements the error interface.
func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// Value returns the original panic value.
func (e *panicError) Value() any { return e.value }

// Stack returns the stack trace.
func (e *panicError) Stack() []byte { return e.stack }

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
