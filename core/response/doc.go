// Package response provides handler.Response constructors for the
// server-rendered, progressively-enhanced applications this module targets:
// plain HTML and text bodies, templ components with out-of-band fragment
// support, HTMX-aware redirects, and the HX header surface.
//
// Wire-level errors are modeled by HTTPError, which implements the
// StatusCode interface the router uses to pick response codes.
package response
