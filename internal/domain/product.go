package domain

import (
	"time"
)

// Product represents a single inventory item owned by a user.
// The owner link is enforced at the store level with a cascading
// foreign key: deleting a user removes all of their products.
type Product struct {
	// ID is the unique identifier for the product (auto-generated).
	ID int64 `json:"id"`

	// OwnerID references the User that owns this product.
	OwnerID int64 `json:"owner_id"`

	// Name is the product name. Must be non-empty.
	Name string `json:"name"`

	// Quantity is the number of units in stock. Never negative.
	Quantity int `json:"quantity"`

	// Description is optional free text. Defaults to empty.
	Description string `json:"description"`

	// CreatedAt is the timestamp when the product was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the product was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProduct creates a new Product with both timestamps set.
func NewProduct(ownerID int64, name string, quantity int, description string) *Product {
	now := time.Now().UTC()
	return &Product{
		OwnerID:     ownerID,
		Name:        name,
		Quantity:    quantity,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
