package binder

import (
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// DefaultMaxMemory is the maximum memory used for parsing multipart forms
// before spilling to disk (10MB).
const DefaultMaxMemory = 10 << 20

var formDecoder = newFormDecoder("form")

// Form deserializes a form-encoded request body into dst, which must be a
// pointer to a struct. It handles application/x-www-form-urlencoded and
// multipart/form-data content types; field names come from "form" struct
// tags, repeated keys populate slices.
func Form(r *http.Request, dst any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return fmt.Errorf("%w: expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: malformed content type %q", ErrFailedToParseForm, contentType)
	}

	var values map[string][]string
	switch {
	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		values = r.PostForm

	case strings.HasPrefix(mediaType, "multipart/"):
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		values = r.MultipartForm.Value

	default:
		return fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
	}

	if err := formDecoder.Decode(dst, values); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
	}
	return nil
}
