package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Client is the request collaborator consumed by the engine. Implementations
// resolve the authority's `{success, data}` envelope into the raw data
// payload, or into an *APIError when the envelope carries an error.
type Client interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Patch(ctx context.Context, path string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, path string) (json.RawMessage, error)
}

// APIError is a typed error decoded from the authority's error envelope.
type APIError struct {
	Code       string
	Message    string
	StatusCode int

	// Fields carries optional field-level validation messages keyed by
	// field name, when the server supplies them.
	Fields map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error %s (status %d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("api error %s: %s (status %d)", e.Code, e.Message, e.StatusCode)
}

// AsAPIError unwraps err into an *APIError when one is present in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
