package route

import (
	"net/http"
	"reflect"
	"regexp"

	"github.com/dmitrymomot/hxroute/core/urlpattern"
)

// Kind classifies a route definition.
type Kind int

const (
	// KindExact matches the whole path and dispatches on one HTTP method.
	KindExact Kind = iota
	// KindSubroute matches a path prefix and delegates the remainder to a
	// nested route set.
	KindSubroute
	// KindCatchAll matches anything no other definition matched. Evaluated
	// last regardless of declaration position.
	KindCatchAll
)

// Def describes one route variant before compilation. Values are produced
// by the definition constructors (Get, Post, Subroute, CatchAll, ...) and
// consumed by New.
type Def struct {
	kind       Kind
	method     string
	rawPattern string
	variant    reflect.Type
	nested     Nested

	// populated by Set compilation
	pattern  urlpattern.Pattern
	re       *regexp.Regexp
	captures []capture
	fields   fieldSet
	usePtr   bool
}

// capture maps one regex capture group onto a variant field.
type capture struct {
	field int    // struct field index
	name  string // parameter name, "" for positional
	label string // diagnostic label ("user_id" or "#2")
	rest  bool   // trailing sub-route remainder group
}

// fieldSet records the role of each variant field, resolved once at set
// construction. Indexes are -1 when the role is absent.
type fieldSet struct {
	named      map[string]int
	positional []int
	query      int
	body       int
	bodyEnc    string
	subroute   int
	rest       int
}

// Get declares a GET route for variant V at the given pattern.
func Get[V any](pattern string) Def {
	return Handle[V](http.MethodGet, pattern)
}

// Post declares a POST route for variant V at the given pattern.
func Post[V any](pattern string) Def {
	return Handle[V](http.MethodPost, pattern)
}

// Put declares a PUT route for variant V at the given pattern.
func Put[V any](pattern string) Def {
	return Handle[V](http.MethodPut, pattern)
}

// Patch declares a PATCH route for variant V at the given pattern.
func Patch[V any](pattern string) Def {
	return Handle[V](http.MethodPatch, pattern)
}

// Delete declares a DELETE route for variant V at the given pattern.
func Delete[V any](pattern string) Def {
	return Handle[V](http.MethodDelete, pattern)
}

// Handle declares a route for variant V with an explicit HTTP method.
// Declaring the same pattern repeatedly with different methods maps those
// methods onto the same literal path.
func Handle[V any](method, pattern string) Def {
	return Def{
		kind:       KindExact,
		method:     method,
		rawPattern: pattern,
		variant:    typeOf[V](),
	}
}

// Subroute declares a prefix route for variant V: the pattern must end with
// a separator, and the remaining path is delegated to the nested set. The
// variant must carry exactly one field tagged `subroute:""` whose type is
// the nested set's route interface.
func Subroute[V any](pattern string, nested Nested) Def {
	return Def{
		kind:       KindSubroute,
		rawPattern: pattern,
		variant:    typeOf[V](),
		nested:     nested,
	}
}

// CatchAll declares the fallback variant matched when nothing else does.
// With a nested set, the variant's `subroute:""` field receives the nested
// decode of the full path; without one, an optional `rest:""` string field
// receives the raw path.
func CatchAll[V any](nested ...Nested) Def {
	d := Def{
		kind:    KindCatchAll,
		variant: typeOf[V](),
	}
	if len(nested) > 0 {
		d.nested = nested[0]
	}
	return d
}

func typeOf[V any]() reflect.Type {
	return reflect.TypeOf((*V)(nil)).Elem()
}
