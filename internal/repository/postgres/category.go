package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository for PostgreSQL
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// categorySelect joins the active-product count onto every category read.
const categorySelect = `
	SELECT c.id, c.name, c.description, c.image_url, c.is_active, c.created_at,
	       COUNT(p.id) FILTER (WHERE p.is_active) AS product_count
	FROM categories c
	LEFT JOIN products p ON p.category_id = c.id
`

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (name, description, image_url, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowxContext(
		ctx,
		query,
		category.Name,
		category.Description,
		category.ImageURL,
		category.IsActive,
		category.CreatedAt,
	).Scan(&category.ID)

	if err != nil {
		if isUniqueViolation(err, "categories_name_lower_key") {
			return domain.ErrDuplicateName
		}
		return err
	}

	return nil
}

// GetByID retrieves a category with its active-product count
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := categorySelect + `
		WHERE c.id = $1
		GROUP BY c.id
	`

	var category domain.Category
	err := r.db.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &category, nil
}

// List retrieves all categories ordered by name ascending
func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := categorySelect + `
		GROUP BY c.id
		ORDER BY c.name ASC
	`

	var categories []*domain.Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}

	return categories, nil
}

// ListActiveNames retrieves the distinct names of active categories
func (r *CategoryRepository) ListActiveNames(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT name FROM categories WHERE is_active ORDER BY name ASC`

	var names []string
	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		return nil, err
	}

	return names, nil
}

// ExistsByName reports whether another category already uses the name
func (r *CategoryRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1) AND id <> $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name, excludeID); err != nil {
		return false, err
	}

	return exists, nil
}

// Update overwrites the category's mutable fields
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $1, description = $2, image_url = $3, is_active = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		category.Name,
		category.Description,
		category.ImageURL,
		category.IsActive,
		category.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "categories_name_lower_key") {
			return domain.ErrDuplicateName
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Delete removes the category, its products and their reviews in one
// transaction, ordered reviews -> products -> category so no orphaned row is
// ever visible. Products are removed regardless of their active flag.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) ([]int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var productIDs []int64
	err = tx.SelectContext(ctx, &productIDs,
		`SELECT id FROM products WHERE category_id = $1`, id)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM reviews WHERE product_id IN (SELECT id FROM products WHERE category_id = $1)`, id)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM products WHERE category_id = $1`, id)
	if err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return productIDs, nil
}
