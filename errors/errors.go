package errors

import (
	"fmt"
	"net/http"
)

// AppError is an error with everything the HTTP layer needs to answer it.
// Message is sent to clients verbatim; Cause never is.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Details    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail adds one client-visible detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// NotFound reports an unknown resource, such as an unrouted path.
func NotFound(resource, id string) *AppError {
	e := New(ErrCodeNotFound, fmt.Sprintf("The requested %s was not found.", resource), http.StatusNotFound).
		WithDetail("resource", resource)
	if id != "" {
		e.WithDetail("id", id)
	}
	return e
}

// AlreadyExists is answered with 400, not 409: registration clients expect
// a duplicate username to be a bad request.
func AlreadyExists(message string) *AppError {
	return New(ErrCodeAlreadyExists, message, http.StatusBadRequest)
}

// InvalidInput reports a request field that could not be used.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, "Invalid input: "+reason, http.StatusBadRequest)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation reports struct validation failures under INVALID_INPUT.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

// EmptyInput reports an operation that needs at least one element.
func EmptyInput(field string) *AppError {
	return New(ErrCodeEmptyInput, field+" must contain at least one element", http.StatusBadRequest).
		WithDetail("field", field)
}

// PayloadTooLarge reports a body over the configured limit.
func PayloadTooLarge(limit int64) *AppError {
	return New(ErrCodePayloadTooLarge, "Request body is too large.", http.StatusRequestEntityTooLarge).
		WithDetail("limit_bytes", limit)
}

// Unauthorized rejects a request for bad credentials.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return New(ErrCodeUnauthorized, reason, http.StatusUnauthorized)
}

// InvalidToken is the single answer for every token failure. Callers may
// attach a cause for logs but never a reason for the client.
func InvalidToken() *AppError {
	return New(ErrCodeInvalidToken, "Invalid token", http.StatusUnauthorized)
}

// ServiceUnavailable reports a temporary refusal the client may retry.
func ServiceUnavailable(message string) *AppError {
	return New(ErrCodeServiceUnavailable, message, http.StatusServiceUnavailable)
}

// Internal hides cause behind a generic 500 message.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred. Please try again or contact support.",
		http.StatusInternalServerError).WithCause(cause)
}
