package repository

import (
	"errors"
	"fmt"
)

// FailureKind classifies infrastructure failures from a store backend.
// The classification is decided once, at the store-client boundary, so
// callers never have to sniff driver-specific error codes.
type FailureKind int

const (
	// FailureOther is an unexpected store failure: the store was reached
	// but something went wrong that is neither a domain rejection nor a
	// connectivity problem.
	FailureOther FailureKind = iota

	// FailureUnreachable means the backing store could not be contacted:
	// connection refused, host unresolved, or a connect/query timeout.
	FailureUnreachable
)

// String returns a human-readable name for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureUnreachable:
		return "unreachable"
	default:
		return "other"
	}
}

// StoreError wraps an infrastructure failure with its classification.
// Domain rejections (uniqueness, ownership) are never wrapped in a
// StoreError; they are returned as plain domain errors.
type StoreError struct {
	// Kind is the failure classification.
	Kind FailureKind

	// Err is the underlying driver error.
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewUnreachable wraps err as a store-unreachable failure.
func NewUnreachable(err error) error {
	return &StoreError{Kind: FailureUnreachable, Err: err}
}

// NewInternal wraps err as an unexpected store failure.
func NewInternal(err error) error {
	return &StoreError{Kind: FailureOther, Err: err}
}

// IsUnreachable reports whether err is a store-unreachable failure.
func IsUnreachable(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr) && storeErr.Kind == FailureUnreachable
}
