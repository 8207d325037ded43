// Package repository provides the data access layer for Inventario.
// This file contains the aggregate types the bootstrap wires together;
// the driver-specific constructors live in the postgres and sqlite
// subpackages to keep this package free of driver imports.
package repository

import (
	"context"
)

// Repositories holds all repository instances.
type Repositories struct {
	User    UserRepository
	Product ProductRepository
}

// DatabaseHealth is an interface for database health checks.
// Both the postgres and sqlite DB wrappers satisfy it, which lets the
// health endpoint and the shutdown path stay driver-agnostic.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Health(ctx context.Context) error
	Close() error
}
