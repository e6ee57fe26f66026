package binder

import "errors"

// Error variables define common binding failures that can occur during
// request processing.
var (
	// ErrUnsupportedMediaType indicates the Content-Type header specifies a
	// media type the binder doesn't support.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrMissingContentType indicates the request lacks a Content-Type header
	// when one is required for parsing.
	ErrMissingContentType = errors.New("missing content type")

	// ErrFailedToParseJSON indicates the request body contains invalid JSON
	// or doesn't match the target struct schema.
	ErrFailedToParseJSON = errors.New("failed to parse JSON request body")

	// ErrFailedToParseForm indicates form data parsing failed due to
	// malformed URL-encoded or multipart data.
	ErrFailedToParseForm = errors.New("failed to parse form data")

	// ErrFailedToParseQuery indicates query parameter parsing failed,
	// typically due to type conversion errors.
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")

	// ErrFailedToParsePath indicates path parameter conversion failed.
	ErrFailedToParsePath = errors.New("failed to parse path parameter")

	// ErrUnsupportedType indicates the target type cannot be decoded from a
	// single path segment (slices, maps, and plain structs).
	ErrUnsupportedType = errors.New("unsupported target type")
)
