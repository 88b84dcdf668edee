package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// Internal is any failure not explicitly classified below.
	Internal Kind = iota
	// Validation represents malformed or missing input.
	Validation
	// Conflict represents a uniqueness violation (username/email taken).
	Conflict
	// Unauthenticated represents a missing, invalid, or expired credential.
	Unauthenticated
	// Forbidden represents a valid credential without permission (deactivated account, origin mismatch).
	Forbidden
	// NotFound represents a missing resource.
	NotFound
)

// Error is a tagged application error carrying a classification and an
// optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// New creates a tagged error.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewValidation creates a Validation error.
func NewValidation(message string, err error) *Error {
	return New(Validation, message, err)
}

// NewConflict creates a Conflict error.
func NewConflict(message string, err error) *Error {
	return New(Conflict, message, err)
}

// NewUnauthenticated creates an Unauthenticated error.
func NewUnauthenticated(message string, err error) *Error {
	return New(Unauthenticated, message, err)
}

// NewForbidden creates a Forbidden error.
func NewForbidden(message string, err error) *Error {
	return New(Forbidden, message, err)
}

// NewNotFound creates a NotFound error.
func NewNotFound(message string, err error) *Error {
	return New(NotFound, message, err)
}

// NewInternal creates an Internal error.
func NewInternal(message string, err error) *Error {
	return New(Internal, message, err)
}

// FromError extracts a tagged error from anywhere in the chain.
func FromError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, kind Kind) bool {
	appErr, ok := FromError(err)
	return ok && appErr.Kind == kind
}
