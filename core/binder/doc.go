// Package binder converts the raw pieces of an HTTP request (path
// captures, the query string, and form or JSON bodies) into typed Go
// values.
//
// Path captures are decoded one scalar at a time with Scalar: basic types,
// plus anything implementing encoding.TextUnmarshaler (enum-like types,
// uuid.UUID, and friends). Composite targets are rejected with
// ErrUnsupportedType, since a path segment carries a single value.
//
// Query strings and form bodies use conventional HTML-form semantics via
// go-playground/form: repeated keys become slice elements, struct tags
// ("query" and "form" respectively) name the parameters. EncodeQuery is the
// inverse used for URL formatting; it drops zero-valued fields so an
// all-default bag encodes to nothing.
package binder
