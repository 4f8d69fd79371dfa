package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("models: validation failed")
	ErrNotFound     = errors.New("models: no matching record found")
	ErrInvalidState = errors.New("models: invalid state for operation")
	ErrForbidden    = errors.New("models: forbidden")
	ErrUnauthorized = errors.New("models: unauthorized")
)

var (
	ErrJobNotFound      = fmt.Errorf("job %w", ErrNotFound)
	ErrBidNotFound      = fmt.Errorf("bid %w", ErrNotFound)
	ErrProviderNotFound = fmt.Errorf("provider %w", ErrNotFound)
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
