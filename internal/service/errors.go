// Package service provides the business logic services for Inventario.
package service

import (
	"errors"
	"fmt"
)

// Common service errors.
var (
	// Validation errors. Checks run in a fixed order and the first
	// failure wins; errors are never aggregated.
	ErrMissingField     = errors.New("missing required field")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrInvalidQuantity  = errors.New("quantity must be a non-negative integer")

	// General errors
	ErrInternalError = errors.New("internal server error")
)

// MissingFieldError reports which required field was absent or empty.
// It matches ErrMissingField under errors.Is; the transport layer uses
// errors.As to name the field in the response.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: '%s'", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
