package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
)

// ReviewRepository implements domain.ReviewRepository for PostgreSQL
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new PostgreSQL review repository
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts the review and recomputes the product's rating and review
// count in one transaction, so readers never observe a review without its
// aggregate. The unique index on (product_id, user_id) turns concurrent
// duplicate submissions into ErrAlreadyExists instead of a double insert.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var productExists bool
	err = tx.GetContext(ctx, &productExists,
		`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1 AND is_active)`,
		review.ProductID)
	if err != nil {
		return err
	}
	if !productExists {
		return domain.ErrNotFound
	}

	var alreadyReviewed bool
	err = tx.GetContext(ctx, &alreadyReviewed,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE product_id = $1 AND user_id = $2)`,
		review.ProductID, review.UserID)
	if err != nil {
		return err
	}
	if alreadyReviewed {
		return domain.ErrAlreadyExists
	}

	insert := `
		INSERT INTO reviews (product_id, user_id, username, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err = tx.QueryRowxContext(
		ctx,
		insert,
		review.ProductID,
		review.UserID,
		review.Username,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	).Scan(&review.ID)
	if err != nil {
		if isUniqueViolation(err, "reviews_product_user_key") {
			return domain.ErrAlreadyExists
		}
		return err
	}

	recompute := `
		UPDATE products
		SET rating = COALESCE(
				(SELECT AVG(rating)::double precision
				 FROM reviews
				 WHERE product_id = $1),
				0
			),
			review_count = (SELECT COUNT(*) FROM reviews WHERE product_id = $1),
			updated_at = $2
		WHERE id = $1
	`

	if _, err := tx.ExecContext(ctx, recompute, review.ProductID, review.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// ListByProductID retrieves reviews for a product, newest first
func (r *ReviewRepository) ListByProductID(ctx context.Context, productID int64, limit, offset int) ([]*domain.Review, error) {
	query := `
		SELECT id, product_id, user_id, username, rating, comment, created_at, updated_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var reviews []*domain.Review
	if err := r.db.SelectContext(ctx, &reviews, query, productID, limit, offset); err != nil {
		return nil, err
	}

	return reviews, nil
}

// CountByProductID returns the total number of reviews for a product
func (r *ReviewRepository) CountByProductID(ctx context.Context, productID int64) (int, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE product_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, productID); err != nil {
		return 0, err
	}

	return count, nil
}
