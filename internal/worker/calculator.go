package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/logger"
)

// Calculator recalculates a product's denormalized rating and review count
// from its stored reviews.
type Calculator struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewCalculator creates a new rating calculator
func NewCalculator(db *sqlx.DB, logger *logger.Logger) *Calculator {
	return &Calculator{
		db:     db,
		logger: logger,
	}
}

// CalculateAndUpdate recomputes the average rating and review count for a
// product and writes them back. Full recalculation keeps the operation
// idempotent and self-correcting.
func (c *Calculator) CalculateAndUpdate(ctx context.Context, productID int64) error {
	query := `
		UPDATE products
		SET
			rating = COALESCE(
				(SELECT AVG(rating)::double precision
				 FROM reviews
				 WHERE product_id = $1),
				0
			),
			review_count = (SELECT COUNT(*) FROM reviews WHERE product_id = $1),
			updated_at = $2
		WHERE id = $1
	`

	result, err := c.db.ExecContext(ctx, query, productID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	// Product removed since the event was published - not an error
	if rowsAffected == 0 {
		c.logger.WithFields(map[string]any{
			"product_id": productID,
		}).Info("Product not found, skipping rating update")
		return nil
	}

	c.logger.WithFields(map[string]any{
		"product_id": productID,
	}).Info("Successfully updated product rating")

	return nil
}

// GetCurrentRating retrieves the stored rating and review count (used in tests)
func (c *Calculator) GetCurrentRating(ctx context.Context, productID int64) (float64, int, error) {
	var row struct {
		Rating      float64 `db:"rating"`
		ReviewCount int     `db:"review_count"`
	}
	query := `SELECT rating, review_count FROM products WHERE id = $1`

	if err := c.db.GetContext(ctx, &row, query, productID); err != nil {
		return 0, 0, fmt.Errorf("failed to get current rating: %w", err)
	}

	return row.Rating, row.ReviewCount, nil
}
