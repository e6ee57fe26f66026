// Package urlpattern parses the textual URL patterns used by route
// definitions into an ordered segment sequence.
//
// A pattern is a slash-separated path whose segments are either literal
// text or parameters. Parameters are written in braces and capture exactly
// one path segment:
//
//	/users/{id}        named parameter "id"
//	/users/{}          positional (unnamed) parameter
//	/assets/           prefix pattern (trailing separator)
//
// Parameters may only appear directly after a separator: "/a-{b}" and
// "/{a}{b}" are both rejected. Literal text is restricted to the RFC 3986
// path-safe character set.
//
// Parsing happens once, at route-definition time. Parse errors carry byte
// offsets so callers can render caret diagnostics pointing at the offending
// character:
//
//	p, err := urlpattern.Parse("/users/{user id}")
//	var perr *urlpattern.ParseError
//	if errors.As(err, &perr) {
//		fmt.Println(perr.Diagnostic())
//	}
package urlpattern
