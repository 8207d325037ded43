package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmarrez/inventario/internal/repository"
)

// Error handling utilities for SQLite. The driver reports constraint
// failures only through message text, so the matching lives here and
// nowhere else.

// isUniqueViolation checks if an error is a unique constraint violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "constraint failed: UNIQUE")
}

// isForeignKeyViolation checks if an error is a foreign key constraint violation.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// isNoRows checks if an error indicates no rows were found.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// classify wraps a non-domain driver error as a repository.StoreError.
// A file-backed SQLite database has no network to lose, but an unopenable
// or missing database file is the embedded equivalent of unreachable.
func classify(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	if strings.Contains(errStr, "unable to open database") ||
		strings.Contains(errStr, "no such file or directory") {
		return repository.NewUnreachable(err)
	}

	return repository.NewInternal(fmt.Errorf("sqlite: %w", err))
}
