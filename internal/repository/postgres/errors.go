package postgres

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmarrez/inventario/internal/repository"
)

// Error classification for the PostgreSQL backend. The classification into
// unreachable vs other happens here, once, so that no caller ever inspects
// driver error codes.

// SQLSTATE codes of interest.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"

	classConnectionException = "08"
	codeAdminShutdown        = "57P01"
	codeCrashShutdown        = "57P02"
	codeCannotConnectNow     = "57P03"
)

// isUniqueViolation checks if an error is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// isForeignKeyViolation checks if an error is a foreign key constraint violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// isCheckViolation checks if an error is a CHECK constraint violation.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeCheckViolation
}

// classify wraps a non-domain driver error as a repository.StoreError,
// deciding whether the store was unreachable or merely misbehaving.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return repository.NewUnreachable(err)
	}

	// Dial failures and I/O timeouts surface as net errors.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return repository.NewUnreachable(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return repository.NewUnreachable(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == classConnectionException:
			return repository.NewUnreachable(err)
		case pgErr.Code == codeAdminShutdown,
			pgErr.Code == codeCrashShutdown,
			pgErr.Code == codeCannotConnectNow:
			return repository.NewUnreachable(err)
		}
	}

	return repository.NewInternal(err)
}
