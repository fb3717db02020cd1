package datahawk

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a rejection from a DataHawk API endpoint. Body carries
// the remote service's own JSON error payload, stringified and unmodified.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Body)
}

// AuthError represents a failure to obtain or decode a bearer token before the
// target endpoint was ever reached.
type AuthError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("auth error (status %d): %s", e.StatusCode, e.Detail)
	}

	return "auth error: " + e.Detail
}

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrEndpointRequired   = errors.New("origin or domain is required")
	ErrNoTokenManager     = errors.New("no token manager configured")
	ErrCacheDisabled      = errors.New("cache disabled")
	ErrCacheMiss          = errors.New("key not found in cache")
	ErrCacheValueTooLarge = errors.New("cache value exceeds maximum size")
	ErrNATSConfigRequired = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCache   = errors.New("unsupported cache type")
	ErrJobFailed          = errors.New("processing job failed")
)

// IsNotFound checks if the error is a 404 rejection.
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 rejection.
func IsUnauthorized(err error) bool {
	return statusIs(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 rejection.
func IsForbidden(err error) bool {
	return statusIs(err, http.StatusForbidden)
}

// IsClientOrServerError reports whether an HTTP status falls in the 4xx or
// 5xx range and should be surfaced as a failure.
func IsClientOrServerError(status int) bool {
	return status >= http.StatusBadRequest
}

func statusIs(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}

	authErr := &AuthError{}
	if errors.As(err, &authErr) {
		return authErr.StatusCode == status
	}

	return false
}
