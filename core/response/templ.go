package response

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/hxroute/core/handler"
)

// Templ creates an HTML response rendering a templ component with 200 OK.
// The component is rendered with the request's context, so it can access
// request-scoped values.
func Templ(component templ.Component) handler.Response {
	return TemplWithStatus(component, http.StatusOK)
}

// TemplWithStatus renders a templ component with a custom status code,
// useful for error pages and fragments returned with 4xx statuses.
func TemplWithStatus(component templ.Component, status int) handler.Response {
	if component == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if err := component.Render(r.Context(), w); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}
		return nil
	}
}

// TemplOOB renders a primary fragment followed by out-of-band fragments.
// Each out-of-band component must carry its own hx-swap-oob attribute; the
// HTMX client routes them to their targets while the primary fragment swaps
// into the requesting element.
func TemplOOB(primary templ.Component, oob ...templ.Component) handler.Response {
	if primary == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := primary.Render(r.Context(), w); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}
		for _, c := range oob {
			if c == nil {
				continue
			}
			if err := c.Render(r.Context(), w); err != nil {
				return fmt.Errorf("templ oob component render error: %w", err)
			}
		}
		return nil
	}
}
