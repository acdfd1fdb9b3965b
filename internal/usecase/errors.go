package usecase

import (
	"errors"
)

// Error kinds surfaced to handlers, matched with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Error carries a user-facing message together with its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func notFoundError(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func invalidInputError(message string) error {
	return &Error{Kind: ErrInvalidInput, Message: message}
}

func conflictError(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

func forbiddenError(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func unauthenticatedError(message string) error {
	return &Error{Kind: ErrUnauthenticated, Message: message}
}
