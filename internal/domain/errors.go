// Package domain contains the core business entities for Inventario.
package domain

import (
	"errors"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.)
// and are always surfaced to the caller, never masked by degraded mode.

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a user with the same username or email exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials indicates authentication failed. It deliberately
	// does not say whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrUnknownOwner indicates the product's owner id does not reference
	// a registered user.
	ErrUnknownOwner = errors.New("unknown owner")
)
