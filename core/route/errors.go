package route

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Definition-time errors. All of them are reported by New and are meant to
// abort application startup; none can occur at request time.
var (
	ErrNotInterface       = errors.New("route: type parameter must be an interface")
	ErrNotStruct          = errors.New("route: variant must be a struct type")
	ErrVariantMismatch    = errors.New("route: variant does not implement the route interface")
	ErrVariantReuse       = errors.New("route: variant declared with conflicting patterns")
	ErrInvalidMethod      = errors.New("route: invalid http method")
	ErrInvalidPattern     = errors.New("route: invalid url pattern")
	ErrNotPrefixPattern   = errors.New("route: sub-route pattern must end with '/'")
	ErrAmbiguousSubroute  = errors.New("route: ambiguous sub-route prefix")
	ErrDuplicateRoute     = errors.New("route: duplicate method for pattern")
	ErrDuplicateCatchAll  = errors.New("route: multiple catch-all definitions")
	ErrMultipleQuery      = errors.New("route: multiple query bag fields")
	ErrInvalidQueryBag    = errors.New("route: invalid query bag")
	ErrMultipleBody       = errors.New("route: multiple body fields")
	ErrBodyNotAllowed     = errors.New("route: body field requires a body-carrying method")
	ErrInvalidBodyEnc     = errors.New("route: invalid body encoding, want form or json")
	ErrSubrouteField      = errors.New("route: subroute field on a non-prefix route")
	ErrMissingSubroute    = errors.New("route: sub-route variant must have a subroute field")
	ErrMultipleSubroute   = errors.New("route: multiple subroute fields")
	ErrRestField          = errors.New("route: rest field is only valid on catch-all variants")
	ErrDuplicateParam     = errors.New("route: duplicate path parameter binding")
	ErrUnboundParam       = errors.New("route: path field has no matching pattern parameter")
	ErrParamCount         = errors.New("route: positional field count does not match pattern")
	ErrUnsupportedParam   = errors.New("route: path parameter field has a non-scalar type")
	ErrNilNested          = errors.New("route: nil nested route set")
	ErrNestedTypeMismatch = errors.New("route: subroute field type does not match the nested set")
)

// NotFoundError is returned by Decode when no pattern matched the path and
// no catch-all is declared. It renders as a terminal 404.
type NotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no route matches %s", e.Path)
}

// StatusCode returns 404.
func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// MethodNotAllowedError is returned by Decode when at least one pattern
// matched the path but none of its declared methods matched the request.
// Allow lists the methods the path accepts, for the Allow response header.
type MethodNotAllowedError struct {
	Method string
	Path   string
	Allow  []string
}

// Error implements the error interface.
func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("method %s not allowed for %s, allowed: %s",
		e.Method, e.Path, strings.Join(e.Allow, ", "))
}

// StatusCode returns 405.
func (e *MethodNotAllowedError) StatusCode() int {
	return http.StatusMethodNotAllowed
}
