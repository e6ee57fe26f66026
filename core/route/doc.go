// Package route compiles declarative route definitions into a matcher,
// a URL formatter, and a request decoder for one application area.
//
// A route set is modeled as a Go sum type: a sealed interface with one
// struct per route. Each struct declares its payload through field tags,
// which are the annotation surface of the route DSL:
//
//	type Site interface{ site() }
//
//	type Home struct{}
//	type ShowUser struct {
//		UserID int64 `path:"user_id"`
//	}
//	type Search struct {
//		Query SearchQuery `query:""`
//	}
//	type API struct {
//		Rest APIRoute `subroute:""`
//	}
//	type NotFound struct {
//		Path string `rest:""`
//	}
//
// Definitions pair a variant with a pattern and method. Patterns may omit
// the leading slash; "" is the root:
//
//	var Routes = route.Must[Site](
//		route.Get[Home](""),
//		route.Get[ShowUser]("users/{user_id}"),
//		route.Get[Search]("search"),
//		route.Subroute[API]("api/", APIRoutes),
//		route.CatchAll[NotFound](),
//	)
//
// New validates every definition-time invariant (pattern syntax, field
// roles, parameter bindings, ambiguous sub-route prefixes) and compiles
// each pattern to a matcher exactly once; a Set is immutable and safe for
// concurrent use.
//
// Field roles:
//
//	path:"name"   one pattern parameter, looked up by name
//	path:""       one positional (unnamed) pattern parameter, bound in order
//	query:""      the query bag, deserialized from the full query string (max one)
//	body:"form"   the request body, form-encoded (max one; body-carrying methods only)
//	body:"json"   the request body, JSON
//	subroute:""   the nested route value of a sub-route or nested catch-all
//	rest:""       the raw unmatched path, catch-all variants only
//
// Matching follows fixed precedence: sub-route prefixes in declaration
// order, then exact patterns in reverse declaration order (the last
// declared overlapping pattern wins), then the catch-all. A path that
// matched with the wrong method is a 405 carrying the allowed set; an
// unmatched path is a 404 unless a catch-all is declared.
//
// Decode and Format are inverses for GET routes without bodies: formatting
// a value and decoding the resulting URL yields the same value back.
package route
