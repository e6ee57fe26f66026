package response

import (
	"net/http"

	"github.com/dmitrymomot/hxroute/core/handler"
)

// Redirect creates a 302 Found (temporary redirect) response.
// For HTMX requests (detected via the HX-Request header), it uses the
// HX-Location header with 200 OK status instead of a standard HTTP redirect.
func Redirect(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectSeeOther creates a 303 See Other response with the Location header
// set to the given URL. This is the canonical post-form redirect: the client
// follows up with a GET. For HTMX requests, it uses HX-Location with 200 OK.
func RedirectSeeOther(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectWithStatus creates a redirect with a custom 3xx status code.
// For HTMX requests, it uses the HX-Location header with 200 OK status.
func RedirectWithStatus(url string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if IsHTMXRequest(r) {
			w.Header().Set(HeaderHXLocation, url)
			w.WriteHeader(http.StatusOK)
			return nil
		}

		if status < 300 || status >= 400 {
			status = http.StatusFound
		}
		http.Redirect(w, r, url, status)
		return nil
	}
}
