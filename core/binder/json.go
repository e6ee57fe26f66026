package binder

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultMaxJSONSize is the maximum accepted size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

// JSON deserializes an application/json request body into dst.
func JSON(r *http.Request, dst any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
	}

	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}
	if mediaType != "application/json" {
		return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
	}

	// Read with one extra byte so oversized bodies are detected without
	// buffering them wholesale.
	body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	if len(body) > DefaultMaxJSONSize {
		return fmt.Errorf("%w: body exceeds %d bytes", ErrFailedToParseJSON, DefaultMaxJSONSize)
	}
	if len(body) == 0 {
		return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	return nil
}
