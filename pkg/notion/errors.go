package notion

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// APIError represents an error reported by the API.
type APIError struct {
	Status  int    `json:"status"  yaml:"status"`
	Code    string `json:"code"    yaml:"code"`
	Message string `json:"message" yaml:"message"`

	// RetryAfter carries the server's Retry-After hint when one was present
	// on the response. Not part of the wire body.
	RetryAfter *time.Duration `json:"-" yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (status: %d)", e.Code, e.Message, e.Status)
}

// Retryable reports whether the failure is transient: rate limiting or a
// server-side error. Any other API error propagates immediately.
func (e *APIError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// TransportError represents a connection-level failure before any API
// response was received. Always retryable.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// RateLimitError is the terminal error raised when the retry budget is
// exhausted on rate-limited responses. It carries the last Retry-After hint
// the server provided, if any.
type RateLimitError struct {
	// RetryAfter is the last server-provided hint; zero when none was sent.
	RetryAfter time.Duration
	// Attempts is the number of transport calls made before giving up.
	Attempts int
	// Err is the last underlying API error.
	Err error
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited after %d attempts (retry after %s)", e.Attempts, e.RetryAfter)
	}

	return fmt.Sprintf("rate limited after %d attempts", e.Attempts)
}

// Unwrap returns the underlying error.
func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// ValidationError is raised by the strict send path when an outbound request
// carries error-class violations. It holds the full validation result so the
// caller can act on every violation at once.
type ValidationError struct {
	Result *ValidationResult
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	violations := e.Result.Errors()
	if len(violations) == 1 {
		return fmt.Sprintf("request validation failed: %s", violations[0].Message)
	}

	return fmt.Sprintf("request validation failed with %d violations", len(violations))
}

// API error codes.
const (
	ErrorCodeObjectNotFound      = "object_not_found"
	ErrorCodeUnauthorized        = "unauthorized"
	ErrorCodeRestrictedResource  = "restricted_resource"
	ErrorCodeRateLimited         = "rate_limited"
	ErrorCodeValidationError     = "validation_error"
	ErrorCodeConflictError       = "conflict_error"
	ErrorCodeInternalServerError = "internal_server_error"
	ErrorCodeServiceUnavailable  = "service_unavailable"
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrTokenRequired        = errors.New("integration token is required")
	ErrBaseURLRequired      = errors.New("base URL is required")
	ErrNoMoreItems          = errors.New("no more items")
	ErrNilFetcher           = errors.New("fetch function is required")
	ErrParentRequired       = errors.New("comment parent or discussion ID is required")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrNoWorkspaceSelected  = errors.New("no workspace configured; run 'notion login' first")
	ErrInvalidOutputFormat  = errors.New("invalid output format")
	ErrMalformedErrorBody   = errors.New("malformed error response body")
	ErrRequestBodyTooLarge  = errors.New("request body exceeds maximum payload size")
	ErrUnsupportedBlockType = errors.New("unsupported block type")
)

// IsNotFound checks if the error is an object-not-found error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Code == ErrorCodeObjectNotFound || apiErr.Status == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Code == ErrorCodeUnauthorized || apiErr.Status == http.StatusUnauthorized
	}

	return false
}

// IsRateLimited checks if the error is a rate-limit error, either a single
// 429 response or the terminal RateLimitError after retry exhaustion.
func IsRateLimited(err error) bool {
	rateErr := &RateLimitError{}
	if errors.As(err, &rateErr) {
		return true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests
	}

	return false
}

// IsValidationError checks if the error carries a validation result.
func IsValidationError(err error) bool {
	valErr := &ValidationError{}

	return errors.As(err, &valErr)
}

// ParseAPIError parses an error response body, falling back to a synthesized
// error when the body is not the documented error shape.
func ParseAPIError(statusCode int, body []byte) *APIError {
	var apiErr APIError

	err := json.Unmarshal(body, &apiErr)
	if err != nil || apiErr.Code == "" {
		return &APIError{
			Status:  statusCode,
			Code:    http.StatusText(statusCode),
			Message: string(body),
		}
	}

	apiErr.Status = statusCode

	return &apiErr
}
