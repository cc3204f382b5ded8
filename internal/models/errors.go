package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies gateway errors into the categories the handlers and
// the UI care about. Each kind maps to a default HTTP status code.
type ErrorKind string

const (
	ErrorKindValidation    ErrorKind = "validation"
	ErrorKindNotFound      ErrorKind = "not_found"
	ErrorKindUpstream      ErrorKind = "upstream"
	ErrorKindQuotaExceeded ErrorKind = "quota_exceeded"
	ErrorKindTimeout       ErrorKind = "timeout"
)

// ApiError is the single error shape surfaced by the Gemini gateway and the
// HTTP layer. Validation errors are raised before any network call; upstream
// errors carry the remote status code and details verbatim.
type ApiError struct {
	Kind       ErrorKind   `json:"kind"`
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// NewValidationError creates a 400-class error for malformed input caught
// before the network layer.
func NewValidationError(message string, details interface{}) *ApiError {
	return &ApiError{
		Kind:       ErrorKindValidation,
		Message:    message,
		StatusCode: 400,
		Details:    details,
	}
}

// NewNotFoundError creates a 404 error for an absent store, document or
// operation.
func NewNotFoundError(message string) *ApiError {
	return &ApiError{
		Kind:       ErrorKindNotFound,
		Message:    message,
		StatusCode: 404,
	}
}

// NewUpstreamError wraps a remote failure, passing the upstream status code
// and details through. A zero status defaults to 500; a 404 keeps not-found
// semantics so get-or-null lookups can translate it.
func NewUpstreamError(message string, statusCode int, details interface{}) *ApiError {
	if statusCode == 0 {
		statusCode = 500
	}
	kind := ErrorKindUpstream
	if statusCode == 404 {
		kind = ErrorKindNotFound
	}
	return &ApiError{
		Kind:       kind,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// NewQuotaExceededError creates a 429-class error distinguished from generic
// upstream failures so the UI can show a recoverable-error message.
func NewQuotaExceededError(message string, details interface{}) *ApiError {
	return &ApiError{
		Kind:       ErrorKindQuotaExceeded,
		Message:    message,
		StatusCode: 429,
		Details:    details,
	}
}

// NewTimeoutError creates a 408-class error raised by the operation poller
// when an operation does not reach a terminal state within the ceiling.
func NewTimeoutError(message string, details interface{}) *ApiError {
	return &ApiError{
		Kind:       ErrorKindTimeout,
		Message:    message,
		StatusCode: 408,
		Details:    details,
	}
}

// IsNotFound reports whether err carries not-found semantics.
func IsNotFound(err error) bool {
	apiErr, ok := AsApiError(err)
	return ok && apiErr.Kind == ErrorKindNotFound
}

// AsApiError unwraps err to an *ApiError if possible.
func AsApiError(err error) (*ApiError, bool) {
	if err == nil {
		return nil, false
	}
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
