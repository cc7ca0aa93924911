// Package apperrors provides the typed application errors returned by the
// domain packages and rendered by the HTTP error middleware.
package apperrors

import (
	"errors"
	"net/http"
)

// Error is a domain error carrying a machine-readable code, a message that is
// safe to show to users, and the HTTP status it maps to.
type Error struct {
	Code    Code
	Message string
	Status  int
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error whose status is derived from the code.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Status:  code.HTTPStatus(),
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Status:  code.HTTPStatus(),
		Cause:   cause,
	}
}

// Validation creates a 400 error for malformed input.
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// Internal wraps a store or infrastructure failure as a 500.
func Internal(message string, cause error) *Error {
	return Wrap(CodeInternal, message, cause)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	if appErr, ok := As(err); ok && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
