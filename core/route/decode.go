package route

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"sort"

	"github.com/dmitrymomot/hxroute/core/binder"
	"github.com/dmitrymomot/hxroute/core/response"
)

// Decode matches the request against the set and extracts the route value.
// On failure the returned error maps directly onto a terminal wire-level
// response: *NotFoundError (404), *MethodNotAllowedError (405), or a
// response.HTTPError describing the field that failed to decode (400-class).
//
// Matching never blocks; only body deserialization reads from the request
// stream. Decode holds no state across calls, so any number of requests may
// decode concurrently against one Set.
func (s *Set[R]) Decode(r *http.Request) (R, error) {
	// RawPath preserves percent-encoding, so captures are decoded exactly
	// once, after matching.
	path := r.URL.Path
	if r.URL.RawPath != "" {
		path = r.URL.RawPath
	}
	if path == "" {
		path = "/"
	}

	v, err := s.decodePath(r, path)
	if err != nil {
		var zero R
		return zero, err
	}
	return v.(R), nil
}

func (s *Set[R]) decodeNested(r *http.Request, path string) (any, error) {
	return s.decodePath(r, path)
}

// decodePath implements the matching precedence: sub-route prefixes in
// declaration order, exact patterns in reverse declaration order, method
// mismatch bookkeeping, then the catch-all.
func (s *Set[R]) decodePath(r *http.Request, path string) (any, error) {
	for _, d := range s.subs {
		if m := d.re.FindStringSubmatch(path); m != nil {
			return s.decodeDef(d, r, m)
		}
	}

	pathMatched := false
	var allow []string
	for i := len(s.exacts) - 1; i >= 0; i-- {
		e := s.exacts[i]
		m := e.re.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		d := e.methods[r.Method]
		if d == nil && r.Method == http.MethodHead {
			d = e.methods[http.MethodGet]
		}
		if d != nil {
			return s.decodeDef(d, r, m)
		}
		// Path matched with the wrong method. Keep trying: a later-declared
		// pattern may still match this path with the right method.
		pathMatched = true
		allow = append(allow, e.order...)
	}

	if pathMatched {
		return nil, &MethodNotAllowedError{
			Method: r.Method,
			Path:   path,
			Allow:  dedupeMethods(allow),
		}
	}

	if s.catchAll != nil {
		return s.decodeCatchAll(s.catchAll, r, path)
	}
	return nil, &NotFoundError{Path: path}
}

// decodeDef extracts all bound fields for one matched definition.
// Any single field failure short-circuits with a 400-class error.
func (s *Set[R]) decodeDef(d *Def, r *http.Request, m []string) (any, error) {
	v := reflect.New(d.variant).Elem()

	var rest string
	for gi, c := range d.captures {
		raw := m[gi+1]
		if c.rest {
			rest = raw
			continue
		}
		text, err := url.PathUnescape(raw)
		if err != nil {
			return nil, response.ErrBadRequest.
				WithMessage(fmt.Sprintf("invalid percent-encoding in path parameter %s", c.label)).
				WithError(err)
		}
		if err := binder.Scalar(v.Field(c.field), text); err != nil {
			return nil, response.ErrBadRequest.
				WithMessage(fmt.Sprintf("invalid value for path parameter %s", c.label)).
				WithError(err)
		}
	}

	if d.fields.query != -1 {
		values, err := url.ParseQuery(r.URL.RawQuery)
		if err != nil {
			return nil, response.ErrBadRequest.
				WithMessage("malformed query string").
				WithError(err)
		}
		if err := binder.Query(values, v.Field(d.fields.query).Addr().Interface()); err != nil {
			return nil, response.ErrBadRequest.
				WithMessage("invalid query parameters").
				WithError(err)
		}
	}

	if d.fields.body != -1 {
		dst := v.Field(d.fields.body).Addr().Interface()
		var err error
		switch d.fields.bodyEnc {
		case "json":
			err = binder.JSON(r, dst)
		default:
			err = binder.Form(r, dst)
		}
		if err != nil {
			if errors.Is(err, binder.ErrUnsupportedMediaType) {
				return nil, response.ErrUnsupportedMediaType.WithError(err)
			}
			return nil, response.ErrBadRequest.
				WithMessage("invalid request body").
				WithError(err)
		}
	}

	if d.kind == KindSubroute {
		nested, err := d.nested.decodeNested(r, rest)
		if err != nil {
			return nil, err
		}
		v.Field(d.fields.subroute).Set(reflect.ValueOf(nested))
	}

	return d.value(v), nil
}

// decodeCatchAll constructs the catch-all value. With a nested set the full
// path delegates into it; otherwise an optional rest field keeps the raw
// path so the value can round-trip through Format.
func (s *Set[R]) decodeCatchAll(d *Def, r *http.Request, path string) (any, error) {
	v := reflect.New(d.variant).Elem()

	if d.nested != nil {
		nested, err := d.nested.decodeNested(r, path)
		if err != nil {
			return nil, err
		}
		v.Field(d.fields.subroute).Set(reflect.ValueOf(nested))
	} else if d.fields.rest != -1 {
		v.Field(d.fields.rest).SetString(path)
	}

	return d.value(v), nil
}

// value converts the populated struct to the interface-facing value,
// honoring pointer-receiver variants.
func (d *Def) value(v reflect.Value) any {
	if d.usePtr {
		return v.Addr().Interface()
	}
	return v.Interface()
}

func dedupeMethods(methods []string) []string {
	seen := make(map[string]bool, len(methods))
	out := methods[:0]
	for _, m := range methods {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}
