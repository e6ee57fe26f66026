package route

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/dmitrymomot/hxroute/core/binder"
	"github.com/dmitrymomot/hxroute/core/urlpattern"
)

// Format renders a route value back to its canonical URL. It is total for
// values built from the set's own variants: every path parameter field is
// guaranteed to exist by New, so formatting cannot fail at request time.
// A value whose type was never declared is a programming error and panics.
//
// The query bag, when present and non-default, is appended in stable
// (sorted-key) order; a bag holding only zero values produces no "?" at all.
func (s *Set[R]) Format(v R) string {
	return s.formatAny(v)
}

// Method returns the HTTP method declared for the value's variant,
// delegating through sub-routes. Variants declared for several methods
// report the first declaration.
func (s *Set[R]) Method(v R) string {
	return s.methodAny(v)
}

// Attr is the resource-identifying pair for embedding a route value in
// markup as a "fetch this URL with this method" marker.
type Attr struct {
	Method string
	URL    string
}

// Attr combines Method and Format for the given value.
func (s *Set[R]) Attr(v R) Attr {
	return Attr{Method: s.methodAny(v), URL: s.formatAny(v)}
}

func (s *Set[R]) formatAny(v any) string {
	d, rv := s.defFor(v)

	if d.kind == KindCatchAll {
		if d.nested != nil {
			return d.nested.formatNested(rv.Field(d.fields.subroute).Interface())
		}
		if d.fields.rest != -1 {
			if p := rv.Field(d.fields.rest).String(); p != "" {
				return p
			}
		}
		return "/"
	}

	var b strings.Builder
	segs := d.pattern.Segments()
	if d.kind == KindSubroute {
		segs = segs[:len(segs)-1] // nested value supplies the separator
	}

	posIdx := 0
	for _, seg := range segs {
		switch seg.Kind {
		case urlpattern.KindSeparator:
			b.WriteByte('/')
		case urlpattern.KindLiteral:
			b.WriteString(seg.Text)
		case urlpattern.KindParam:
			var fv reflect.Value
			if seg.Text != "" {
				fv = rv.Field(d.fields.named[seg.Text])
			} else {
				fv = rv.Field(d.fields.positional[posIdx])
				posIdx++
			}
			b.WriteString(url.PathEscape(binder.ScalarString(fv)))
		}
	}

	if d.kind == KindSubroute {
		b.WriteString(d.nested.formatNested(rv.Field(d.fields.subroute).Interface()))
		return b.String()
	}

	if d.fields.query != -1 {
		values, err := binder.EncodeQuery(rv.Field(d.fields.query).Interface())
		if err != nil {
			// New validated the bag shape, so this is a definition bug on a
			// par with formatting an unknown variant.
			panic(fmt.Sprintf("route: query bag on %s failed to encode: %v", d.variant, err))
		}
		if len(values) > 0 {
			b.WriteByte('?')
			b.WriteString(values.Encode())
		}
	}

	return b.String()
}

func (s *Set[R]) methodAny(v any) string {
	d, rv := s.defFor(v)
	switch d.kind {
	case KindSubroute:
		return d.nested.methodNested(rv.Field(d.fields.subroute).Interface())
	case KindCatchAll:
		if d.nested != nil {
			return d.nested.methodNested(rv.Field(d.fields.subroute).Interface())
		}
		return http.MethodGet
	default:
		return d.method
	}
}

func (s *Set[R]) formatNested(v any) string {
	return s.formatAny(v)
}

func (s *Set[R]) methodNested(v any) string {
	return s.methodAny(v)
}

// defFor resolves a value to its compiled definition and dereferenced
// struct value. Unknown types panic: the set of variants is closed, so this
// indicates a definition bug, not a request-time condition.
func (s *Set[R]) defFor(v any) (*Def, reflect.Value) {
	t := reflect.TypeOf(v)
	d, ok := s.byType[t]
	if !ok {
		panic(fmt.Sprintf("route: %T is not a variant of %s", v, s.rtype))
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	return d, rv
}
