package toast

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTenant is returned when neither the call nor the configuration names a
// restaurant.
var ErrNoTenant = errors.New("restaurant GUID not configured")

// AuthError reports a failed client-credentials exchange.
type AuthError struct {
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("authentication failed: status %d: %s", e.Status, e.Message)
	}
	return "authentication failed: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response from the API.
type HTTPError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// NetworkError means the request was sent but no response came back.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("no response for %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError rejects caller arguments before any request is made.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid arguments: " + e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" ("+f.Rule+")")
	}
	return "invalid arguments: " + strings.Join(parts, ", ")
}

// ApplicationError is a business rule violated locally, such as a missing
// identifier or an entity absent from an already fetched collection.
type ApplicationError struct {
	Message string
	Err     error
}

func (e *ApplicationError) Error() string { return e.Message }

func (e *ApplicationError) Unwrap() error { return e.Err }

func Errorf(format string, args ...any) *ApplicationError {
	return &ApplicationError{Message: fmt.Sprintf(format, args...)}
}

// Kind names the taxonomy bucket err falls into.
func Kind(err error) string {
	var (
		authErr  *AuthError
		httpErr  *HTTPError
		netErr   *NetworkError
		validErr *ValidationError
		appErr   *ApplicationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &authErr):
		return "auth"
	case errors.As(err, &validErr):
		return "validation"
	case errors.As(err, &appErr):
		return "application"
	case errors.As(err, &httpErr):
		return "http"
	case errors.As(err, &netErr):
		return "network"
	default:
		return "internal"
	}
}
