package acme_reviews

import (
	"errors"
	"fmt"
)

// Error kinds. Every error surfaced by the repository and service layers
// matches exactly one of these via errors.Is; the HTTP layer maps kinds to
// status codes.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("not authorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

// Error carries a kind plus a detail that is safe to show to clients.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Detail
}

func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an *Error of the given kind with a formatted detail.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Validationf is shorthand for Errorf(ErrValidation, ...).
func Validationf(format string, args ...any) error {
	return Errorf(ErrValidation, format, args...)
}

// NotFoundf is shorthand for Errorf(ErrNotFound, ...).
func NotFoundf(format string, args ...any) error {
	return Errorf(ErrNotFound, format, args...)
}

// Detail returns the client-safe detail of err, or "" when err carries none.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return ""
}
