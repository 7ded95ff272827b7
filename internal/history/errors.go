// Package history holds the domain types shared by the service-history
// pipeline: the single validation error kind and the input validators.
package history

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is the one failure type the dispatcher renders directly.
// It carries the message shown to the caller and the HTTP-style status code
// for the response envelope. Everything that is not a ValidationError is
// rendered as a generic 500 with the cause logged, never exposed.
type ValidationError struct {
	Message    string
	StatusCode int
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the default 400 status.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message, StatusCode: http.StatusBadRequest}
}

// NewValidationErrorf is NewValidationError with formatting.
func NewValidationErrorf(format string, args ...any) *ValidationError {
	return NewValidationError(fmt.Sprintf(format, args...))
}

// WrapValidation folds a collaborator failure into a ValidationError so
// callers have one failure type to handle. The original error is preserved
// in the message for logs; status stays 400.
func WrapValidation(context string, err error) *ValidationError {
	return NewValidationErrorf("%s: %v", context, err)
}

// AsValidation reports whether err is (or wraps) a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
