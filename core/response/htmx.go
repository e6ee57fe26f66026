package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/hxroute/core/handler"
)

// HTMX response headers, sent by the server to control client behavior.
const (
	HeaderHXLocation   = "HX-Location"
	HeaderHXPushURL    = "HX-Push-Url"
	HeaderHXRedirect   = "HX-Redirect"
	HeaderHXRefresh    = "HX-Refresh"
	HeaderHXReplaceURL = "HX-Replace-Url"
	HeaderHXReswap     = "HX-Reswap"
	HeaderHXRetarget   = "HX-Retarget"
	HeaderHXReselect   = "HX-Reselect"
	HeaderHXTrigger    = "HX-Trigger"
)

// HTMX request headers, sent by the HTMX client.
const (
	HeaderHXRequest     = "HX-Request"
	HeaderHXBoosted     = "HX-Boosted"
	HeaderHXCurrentURL  = "HX-Current-URL"
	HeaderHXPrompt      = "HX-Prompt"
	HeaderHXTarget      = "HX-Target"
	HeaderHXTriggerName = "HX-Trigger-Name"
)

// Attrs renders a method/URL pair as the HTMX attribute set to embed in
// generated markup, e.g. Attrs("POST", "/entries") yields
// {"hx-post": "/entries"}. Combine with a route set's Method and Format to
// declare "fetch this URL with this method" markers:
//
//	<button { response.Attrs(routes.Method(v), routes.Format(v))... }>
func Attrs(method, url string) templ.Attributes {
	key := "hx-get"
	switch strings.ToUpper(method) {
	case http.MethodPost:
		key = "hx-post"
	case http.MethodPut:
		key = "hx-put"
	case http.MethodPatch:
		key = "hx-patch"
	case http.MethodDelete:
		key = "hx-delete"
	}
	return templ.Attributes{key: url}
}

// HTMXOption configures HTMX-specific response headers.
type HTMXOption func(*htmxConfig)

type htmxConfig struct {
	trigger    map[string]any
	pushURL    string
	replaceURL string
	redirect   string
	refresh    bool
	reswap     string
	retarget   string
	reselect   string
}

// WithHTMX wraps any response with HTMX-specific headers controlling
// client-side swap and navigation behavior.
func WithHTMX(response handler.Response, opts ...HTMXOption) handler.Response {
	if response == nil || len(opts) == 0 {
		return response
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		cfg := &htmxConfig{}
		for _, opt := range opts {
			opt(cfg)
		}

		if cfg.pushURL != "" {
			w.Header().Set(HeaderHXPushURL, cfg.pushURL)
		}
		if cfg.replaceURL != "" {
			w.Header().Set(HeaderHXReplaceURL, cfg.replaceURL)
		}
		if cfg.redirect != "" {
			w.Header().Set(HeaderHXRedirect, cfg.redirect)
		}
		if cfg.refresh {
			w.Header().Set(HeaderHXRefresh, "true")
		}
		if cfg.reswap != "" {
			w.Header().Set(HeaderHXReswap, cfg.reswap)
		}
		if cfg.retarget != "" {
			w.Header().Set(HeaderHXRetarget, cfg.retarget)
		}
		if cfg.reselect != "" {
			w.Header().Set(HeaderHXReselect, cfg.reselect)
		}
		if len(cfg.trigger) > 0 {
			if data, err := json.Marshal(cfg.trigger); err == nil {
				w.Header().Set(HeaderHXTrigger, string(data))
			}
		}

		return response(w, r)
	}
}

// TriggerEvent sets a single event in the HX-Trigger header.
// If called multiple times, events are merged.
func TriggerEvent(name string, detail any) HTMXOption {
	return func(cfg *htmxConfig) {
		if cfg.trigger == nil {
			cfg.trigger = make(map[string]any)
		}
		cfg.trigger[name] = detail
	}
}

// PushURL sets the HX-Push-Url header to update the browser URL without a
// reload. Use "false" to prevent the update.
func PushURL(url string) HTMXOption {
	return func(cfg *htmxConfig) {
		cfg.pushURL = url
	}
}

// ReplaceURL sets the HX-Replace-Url header to replace the browser URL.
func ReplaceURL(url string) HTMXOption {
	return func(cfg *htmxConfig) {
		cfg.replaceURL = url
	}
}

// HTMXRedirect sets the HX-Redirect header for a full client-side redirect.
func HTMXRedirect(url string) HTMXOption {
	return func(cfg *htmxConfig) {
		cfg.redirect = url
	}
}

// Refresh sets the HX-Refresh header to trigger a full page refresh.
func Refresh() HTMXOption {
	return func(cfg *htmxConfig) {
		cfg.refresh = true
	}
}

// Reswap sets the HX-Reswap header to modify swap behavior, e.g. "innerHTML"
// or "outerHTML settle:1s".
func Reswap(method string, modifiers ...string) HTMXOption {
	return func(cfg *htmxConfig) {
		if len(modifiers) > 0 {
			cfg.reswap = method + " " + strings.Join(modifiers, " ")
		} else {
			cfg.reswap = method
		}
	}
}

// Retarget sets the HX-Retarget header to change the target element.
func Retarget(selector string) HTMXOption {
	return func(cfg *htmxConfig) {
		cfg.retarget = selector
	}
}

// Reselect sets the HX-Reselect header to select a subset of the response.
func Reselect(selector string) HTMXOption {
	return func(cfg *htmxConfig) {
		cfg.reselect = selector
	}
}

// IsHTMXRequest checks if the request is from an HTMX client.
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// IsHTMXBoosted checks if the request is from HTMX boost.
func IsHTMXBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderHXBoosted) == "true"
}
