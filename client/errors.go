package client

import (
	"errors"
	"fmt"
)

// ErrorType identifies the category of a client error
type ErrorType string

const (
	// ValidationError indicates the request descriptor failed its
	// preconditions before any network activity.
	ValidationError ErrorType = "validation"
	// HTTPError indicates a terminal non-retriable response status.
	HTTPError ErrorType = "http"
	// RetryExhaustedError indicates the attempt budget ran out while the
	// last response was still classified as retriable.
	RetryExhaustedError ErrorType = "retry_exhausted"
)

// ClientError is the interface implemented by all typed errors raised by
// the client. Transport faults are not wrapped into this taxonomy; they
// propagate to the caller as returned by the Transport.
type ClientError interface {
	error
	Type() ErrorType
}

// validationError is raised before the first physical attempt.
type validationError struct {
	message string
	field   string
}

// NewValidationError creates an error for a descriptor that failed
// validation. field may be empty when the failure is not tied to one field.
func NewValidationError(message, field string) ClientError {
	return &validationError{message: message, field: field}
}

func (e *validationError) Error() string {
	if e.field != "" {
		return fmt.Sprintf("validation error: %s (field: %s)", e.message, e.field)
	}
	return fmt.Sprintf("validation error: %s", e.message)
}

func (e *validationError) Type() ErrorType { return ValidationError }

// Field returns the offending field name, if known.
func (e *validationError) Field() string { return e.field }

// httpError is raised on a terminal non-retriable response.
type httpError struct {
	message    string
	statusCode int
	raw        []byte
	parsed     any
}

// NewHTTPError creates an error carrying a terminal response status, the
// raw error body, and its parsed form.
func NewHTTPError(message string, statusCode int, raw []byte, parsed any) ClientError {
	return &httpError{message: message, statusCode: statusCode, raw: raw, parsed: parsed}
}

func (e *httpError) Error() string {
	return fmt.Sprintf("HTTP error: %s (status: %d)", e.message, e.statusCode)
}

func (e *httpError) Type() ErrorType { return HTTPError }

// StatusCode returns the terminal response status.
func (e *httpError) StatusCode() int { return e.statusCode }

// Body returns the raw error body bytes.
func (e *httpError) Body() []byte { return e.raw }

// ParsedBody returns the parsed error body, or nil when parsing was not possible.
func (e *httpError) ParsedBody() any { return e.parsed }

// retryExhaustedError is raised when every attempt in the budget came back retriable.
type retryExhaustedError struct {
	message    string
	statusCode int
	raw        []byte
	attempts   int
}

// NewRetryExhaustedError creates an error carrying the last retriable
// response for diagnostics.
func NewRetryExhaustedError(message string, statusCode int, raw []byte, attempts int) ClientError {
	return &retryExhaustedError{message: message, statusCode: statusCode, raw: raw, attempts: attempts}
}

func (e *retryExhaustedError) Error() string {
	return fmt.Sprintf("retry budget exhausted: %s (status: %d, attempts: %d)", e.message, e.statusCode, e.attempts)
}

func (e *retryExhaustedError) Type() ErrorType { return RetryExhaustedError }

// StatusCode returns the status of the last attempt.
func (e *retryExhaustedError) StatusCode() int { return e.statusCode }

// Body returns the raw body of the last attempt.
func (e *retryExhaustedError) Body() []byte { return e.raw }

// Attempts returns how many physical attempts were made.
func (e *retryExhaustedError) Attempts() int { return e.attempts }

// IsErrorType reports whether err is a ClientError of the given type.
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	var ce ClientError
	if errors.As(err, &ce) {
		return ce.Type() == errorType
	}
	return false
}

// IsHTTPStatusError reports whether err is an HTTP error with the given status.
func IsHTTPStatusError(err error, statusCode int) bool {
	if err == nil {
		return false
	}
	var he *httpError
	if errors.As(err, &he) {
		return he.statusCode == statusCode
	}
	return false
}

// IsSuccessStatus reports whether code is in the 2xx range.
func IsSuccessStatus(code int) bool {
	return code >= 200 && code <= 299
}
