package domain

import (
	"context"
	"time"
)

// Category groups products. Deleting a category physically removes its
// products and their reviews, unlike the product's own soft-delete.
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" validate:"required,min=1,max=50"`
	Description *string   `json:"description,omitempty" db:"description"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// ProductCount is the number of active products in the category,
	// computed at read time.
	ProductCount int `json:"product_count" db:"product_count"`
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create inserts a new category and fills in its generated ID
	Create(ctx context.Context, category *Category) error

	// GetByID retrieves a category with its active-product count
	GetByID(ctx context.Context, id int64) (*Category, error)

	// List retrieves all categories ordered by name ascending, each with
	// its active-product count
	List(ctx context.Context) ([]*Category, error)

	// ListActiveNames retrieves the distinct names of active categories,
	// ordered ascending
	ListActiveNames(ctx context.Context) ([]string, error)

	// ExistsByName reports whether another category already uses the name,
	// compared case-insensitively. excludeID is skipped (0 excludes nothing).
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)

	// Update overwrites the category's mutable fields
	Update(ctx context.Context, category *Category) error

	// Delete removes the category together with all of its products and their
	// reviews in a single transaction. Returns the IDs of removed products.
	Delete(ctx context.Context, id int64) ([]int64, error)
}
