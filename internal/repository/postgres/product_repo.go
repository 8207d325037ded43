package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarrez/inventario/internal/domain"
	"github.com/dmarrez/inventario/internal/repository"
)

// productRepository implements repository.ProductRepository for PostgreSQL.
type productRepository struct {
	db *DB
}

// NewProductRepository creates a new PostgreSQL product repository.
func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product. Ownership is enforced by the foreign key
// on user_id, so a missing owner is detected atomically with the insert.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (user_id, name, quantity, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.Pool.QueryRow(ctx, query,
		product.OwnerID,
		product.Name,
		product.Quantity,
		product.Description,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %d", domain.ErrUnknownOwner, product.OwnerID)
		}
		if isCheckViolation(err) {
			return repository.NewInternal(fmt.Errorf("product constraint violated: %w", err))
		}
		return classify(fmt.Errorf("failed to create product: %w", err))
	}

	return nil
}

// ListByOwner returns the owner's products, newest first. An owner id that
// matches no user yields an empty slice, not an error.
func (r *productRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Product, error) {
	query := `
		SELECT id, user_id, name, quantity, description, created_at, updated_at
		FROM products
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list products: %w", err))
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.OwnerID,
			&product.Name,
			&product.Quantity,
			&product.Description,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, classify(fmt.Errorf("failed to scan product: %w", err))
		}
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
		SET quantity = $2, description = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Pool.Exec(ctx, query,
		product.ID,
		product.Quantity,
		product.Description,
		product.UpdatedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to update product: %w", err))
	}

	if result.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

// Ensure productRepository implements repository.ProductRepository.
var _ repository.ProductRepository = (*productRepository)(nil)
