package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarrez/inventario/internal/domain"
	"github.com/dmarrez/inventario/internal/repository"
)

// productRepository implements repository.ProductRepository for SQLite.
type productRepository struct {
	db *DB
}

// NewProductRepository creates a new SQLite product repository.
func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product. The owner check rides in the same statement
// via INSERT ... SELECT, so a missing owner is detected atomically without
// relying on deferred foreign key enforcement.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (user_id, name, quantity, description, created_at, updated_at)
		SELECT ?, ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM users WHERE id = ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		product.OwnerID,
		product.Name,
		product.Quantity,
		product.Description,
		product.CreatedAt.Format(time.RFC3339Nano),
		product.UpdatedAt.Format(time.RFC3339Nano),
		product.OwnerID,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %d", domain.ErrUnknownOwner, product.OwnerID)
		}
		return classify(fmt.Errorf("failed to create product: %w", err))
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: user %d", domain.ErrUnknownOwner, product.OwnerID)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return classify(fmt.Errorf("failed to get last insert ID: %w", err))
	}
	product.ID = id

	return nil
}

// ListByOwner returns the owner's products, newest first.
func (r *productRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Product, error) {
	query := `
		SELECT id, user_id, name, quantity, description, created_at, updated_at
		FROM products
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list products: %w", err))
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product := &domain.Product{}
		var createdAt, updatedAt string

		err := rows.Scan(
			&product.ID,
			&product.OwnerID,
			&product.Name,
			&product.Quantity,
			&product.Description,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, classify(fmt.Errorf("failed to scan product: %w", err))
		}

		product.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		product.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("error iterating products: %w", err))
	}

	return products, nil
}

// Update updates a product's quantity and description.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET quantity = ?, description = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		product.Quantity,
		product.Description,
		product.UpdatedAt.Format(time.RFC3339Nano),
		product.ID,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to update product: %w", err))
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

// Ensure productRepository implements repository.ProductRepository.
var _ repository.ProductRepository = (*productRepository)(nil)
