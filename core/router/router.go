package router

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/hxroute/core/handler"
	"github.com/dmitrymomot/hxroute/core/logger"
	"github.com/dmitrymomot/hxroute/core/route"
)

// New wraps a compiled route set and an application handler into an
// http.Handler. The handler receives every successfully decoded route
// value; decode failures go to the error handler.
func New[R any](set *route.Set[R], h handler.Func[R], opts ...Option[R]) http.Handler {
	if set == nil {
		panic(ErrNilRouteSet)
	}
	if h == nil {
		panic(ErrNilHandler)
	}

	m := &mux[R]{
		set:          set,
		handler:      h,
		errorHandler: defaultErrorHandler,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("router"))

	// Middlewares wrap outermost-first, matching registration order.
	for i := len(m.middlewares) - 1; i >= 0; i-- {
		m.handler = m.middlewares[i](m.handler)
	}

	return m
}

// Option configures a router.
type Option[R any] func(*mux[R])

// WithLogger sets the logger used for panics and render failures.
// The default logger discards everything.
func WithLogger[R any](logger *slog.Logger) Option[R] {
	return func(m *mux[R]) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithErrorHandler replaces the default error handler, which resolves the
// status from the error's StatusCode method and writes a plain-text body.
func WithErrorHandler[R any](eh handler.ErrorHandler) Option[R] {
	return func(m *mux[R]) {
		if eh != nil {
			m.errorHandler = eh
		}
	}
}

// WithMiddleware appends middleware around the application handler.
// Middleware runs after route decoding, so it sees the typed route value.
func WithMiddleware[R any](mw ...handler.Middleware[R]) Option[R] {
	return func(m *mux[R]) {
		m.middlewares = append(m.middlewares, mw...)
	}
}
