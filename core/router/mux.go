package router

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dmitrymomot/hxroute/core/handler"
	"github.com/dmitrymomot/hxroute/core/logger"
	"github.com/dmitrymomot/hxroute/core/route"
)

// mux is the private http.Handler implementation returned by New.
type mux[R any] struct {
	set          *route.Set[R]
	handler      handler.Func[R]
	middlewares  []handler.Middleware[R]
	errorHandler handler.ErrorHandler
	logger       *slog.Logger
}

// ServeHTTP implements http.Handler.
func (m *mux[R]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ww := newResponseWriter(w)

	// Access log. Declared before the recovery defer so it observes the
	// final status even when a panic was recovered.
	defer func() {
		m.logger.Debug("request served",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.StatusCode(ww.Status()),
			logger.Elapsed(start),
			logger.RequestID(r.Header.Get("X-Request-Id")),
		)
	}()

	// Recover from panics so a single request cannot take the server down.
	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.logger.Error("panic after response written",
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.StatusCode(ww.Status()),
					slog.Any("panic", panicErr.value),
					slog.String("stack", string(panicErr.stack)),
				)
				return
			}
			m.errorHandler(ww, r, panicErr)
		}
	}()

	rt, err := m.set.Decode(r)
	if err != nil {
		// Set the Allow header per RFC 7231 before responding with 405.
		var mna *route.MethodNotAllowedError
		if errors.As(err, &mna) && !ww.Written() {
			ww.Header().Set("Allow", strings.Join(mna.Allow, ", "))
		}
		m.errorHandler(ww, r, err)
		return
	}

	resp := m.handler(r, rt)
	if resp == nil {
		m.errorHandler(ww, r, ErrNilResponse)
		return
	}

	if err := resp(ww, r); err != nil {
		if ww.Written() {
			m.logger.Error("response render failed after write",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(ww.Status()),
				logger.Error(err),
			)
			return
		}
		m.errorHandler(ww, r, err)
	}
}
