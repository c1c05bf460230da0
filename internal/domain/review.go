package domain

import (
	"context"
	"time"
)

// Review is a customer review. At most one review exists per
// (product, user) pair; reviews are never edited or deleted individually,
// only removed when the owning category cascade-deletes the product.
type Review struct {
	ID        int64      `json:"id" db:"id"`
	ProductID int64      `json:"product_id" db:"product_id" validate:"required"`
	UserID    int64      `json:"user_id" db:"user_id" validate:"required"`
	Username  string     `json:"username" db:"username" validate:"required,min=1,max=100"`
	Rating    int        `json:"rating" db:"rating" validate:"required,min=1,max=5"`
	Comment   *string    `json:"comment,omitempty" db:"comment" validate:"omitempty,max=1000"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	// Create inserts the review and recomputes the product's denormalized
	// rating and review count in the same transaction. Returns ErrNotFound
	// if the product is absent or inactive, ErrAlreadyExists if the user
	// already reviewed the product.
	Create(ctx context.Context, review *Review) error

	// ListByProductID retrieves reviews for a product, newest first
	ListByProductID(ctx context.Context, productID int64, limit, offset int) ([]*Review, error)

	// CountByProductID returns the total number of reviews for a product
	CountByProductID(ctx context.Context, productID int64) (int, error)
}
