package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarrez/inventario/internal/domain"
	"github.com/dmarrez/inventario/internal/repository"
)

// userRepository implements repository.UserRepository for SQLite.
type userRepository struct {
	db *DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. Uniqueness is enforced by the table's unique
// constraints, atomically with the insert.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt.Format(time.RFC3339Nano),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username or email already exists", domain.ErrUserAlreadyExists)
		}
		return classify(fmt.Errorf("failed to create user: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return classify(fmt.Errorf("failed to get last insert ID: %w", err))
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = ?
	`

	user := &domain.User{}
	var createdAt string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&createdAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classify(fmt.Errorf("failed to get user by ID: %w", err))
	}

	user.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	return user, nil
}

// GetByUsername retrieves a user by username (case-sensitive).
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = ?
	`

	user := &domain.User{}
	var createdAt string

	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&createdAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classify(fmt.Errorf("failed to get user by username: %w", err))
	}

	user.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	return user, nil
}

// List returns users ordered by creation time, newest first.
func (r *userRepository) List(ctx context.Context, opts repository.ListOptions) ([]*domain.User, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT means no limit
	}

	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, opts.Offset)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list users: %w", err))
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		var createdAt string

		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&createdAt,
		)
		if err != nil {
			return nil, classify(fmt.Errorf("failed to scan user: %w", err))
		}

		user.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("error iterating users: %w", err))
	}

	return users, nil
}

// Delete removes a user by ID. Products owned by the user are removed by
// the ON DELETE CASCADE constraint (foreign_keys pragma is always on).
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return classify(fmt.Errorf("failed to delete user: %w", err))
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// Ensure userRepository implements repository.UserRepository.
var _ repository.UserRepository = (*userRepository)(nil)
