// Package handler defines the function types shared by the routing and
// response layers.
package handler

import "net/http"

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
// Rendering errors are handled by the router's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// Func handles one decoded route value and produces a response.
// R is the application's route sum type (a sealed interface with one struct
// per route); handlers typically dispatch with an exhaustive type switch.
type Func[R any] func(r *http.Request, route R) Response

// ErrorHandler converts request-processing errors into responses.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware[R any] func(next Func[R]) Func[R]
