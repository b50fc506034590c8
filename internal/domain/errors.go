package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrAccess     = errors.New("document access failed")
	ErrValidation = errors.New("validation failed")
)

// AccessError is the single error kind returned by the document access layer.
// It covers unreachable backends, non-success responses, missing content and
// identifiers that resolve to nothing.
type AccessError struct {
	Op      string // operation that failed (list_documents, fetch_content, resolve, ...)
	Status  int    // HTTP status from the backend, 0 if none was received
	Message string // human-readable description
	Err     error  // underlying transport/decode error, may be nil
}

// NewAccessError creates an AccessError without an underlying cause.
func NewAccessError(op, format string, args ...interface{}) *AccessError {
	return &AccessError{Op: op, Message: fmt.Sprintf(format, args...)}
}

// WrapAccessError rewraps a lower-level error into an AccessError.
// An error that already is an AccessError is returned unchanged.
func WrapAccessError(op string, err error, format string, args ...interface{}) *AccessError {
	var accessErr *AccessError
	if errors.As(err, &accessErr) {
		return accessErr
	}
	return &AccessError{Op: op, Message: fmt.Sprintf(format, args...), Err: err}
}

// Error implements the error interface
func (e *AccessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause
func (e *AccessError) Unwrap() error { return e.Err }

// Is allows errors.Is() to match against ErrAccess
func (e *AccessError) Is(target error) bool { return target == ErrAccess }

// StatusCode implements the HTTPError interface
func (e *AccessError) StatusCode() int { return http.StatusBadGateway }

// ValidationError indicates invalid input on one of the transports
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
