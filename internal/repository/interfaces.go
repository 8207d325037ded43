// Package repository defines data access interfaces for Inventario.
// These interfaces abstract database operations, allowing for different
// implementations (PostgreSQL, SQLite, in-memory for testing) while keeping
// the service layer clean.
package repository

import (
	"context"

	"github.com/dmarrez/inventario/internal/domain"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create inserts a new user and fills in its generated ID.
	// Returns domain.ErrUserAlreadyExists if the username or email is taken.
	// The uniqueness check is atomic with the insert: two concurrent
	// registrations with the same username cannot both succeed.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns domain.ErrUserNotFound if no such user exists.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by username (case-sensitive).
	// Returns domain.ErrUserNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns users ordered by creation time, newest first.
	List(ctx context.Context, opts ListOptions) ([]*domain.User, error)

	// Delete removes a user by ID. The store cascades the delete to all
	// products owned by the user.
	Delete(ctx context.Context, id int64) error
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// Create inserts a new product and fills in its generated ID.
	// Returns domain.ErrUnknownOwner if the owner does not exist.
	Create(ctx context.Context, product *domain.Product) error

	// ListByOwner returns all products owned by the given user, ordered by
	// creation time descending (newest first). Returns an empty, non-nil
	// slice when the owner has no products; a syntactically valid owner id
	// that matches no user is not an error.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Product, error)

	// Update updates a product's quantity and description.
	// Returns domain.ErrProductNotFound if no such product exists.
	Update(ctx context.Context, product *domain.Product) error
}

// ListOptions contains common pagination options.
type ListOptions struct {
	// Offset is the number of records to skip.
	Offset int

	// Limit is the maximum number of records to return. Zero means no limit.
	Limit int
}
