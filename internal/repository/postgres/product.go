package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
)

// ProductRepository implements domain.ProductRepository for PostgreSQL
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// productColumns lists every product column plus the owning category's image
// URL, joined so listings can render it without a second query.
const productColumns = `
	p.id, p.name, p.description, p.price, p.discount_price, p.stock,
	p.category_id, p.category_name, p.brand, p.color, p.size, p.material,
	p.image_url, p.rating, p.review_count, p.is_active, p.is_featured,
	p.created_at, p.updated_at, p.sku, p.tags,
	c.image_url AS category_image_url
`

const productFrom = `
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

// Create inserts a new product
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (
			name, description, price, discount_price, stock,
			category_id, category_name, brand, color, size, material,
			image_url, rating, review_count, is_active, is_featured,
			created_at, updated_at, sku, tags
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`

	return r.db.QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.DiscountPrice,
		product.Stock,
		product.CategoryID,
		product.CategoryName,
		product.Brand,
		product.Color,
		product.Size,
		product.Material,
		product.ImageURL,
		product.Rating,
		product.ReviewCount,
		product.IsActive,
		product.IsFeatured,
		product.CreatedAt,
		product.UpdatedAt,
		product.Sku,
		product.Tags,
	).Scan(&product.ID)
}

// GetByID retrieves an active product
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT` + productColumns + productFrom + `WHERE p.id = $1 AND p.is_active`
	return r.getOne(ctx, query, id)
}

// GetByIDAny retrieves a product regardless of its active flag
func (r *ProductRepository) GetByIDAny(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT` + productColumns + productFrom + `WHERE p.id = $1`
	return r.getOne(ctx, query, id)
}

func (r *ProductRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Product, error) {
	var product domain.Product
	err := r.db.GetContext(ctx, &product, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// List retrieves all active products, newest first
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT` + productColumns + productFrom + `
		WHERE p.is_active
		ORDER BY p.created_at DESC`
	return r.selectMany(ctx, query)
}

// ListFeatured retrieves the newest active featured products
func (r *ProductRepository) ListFeatured(ctx context.Context, limit int) ([]*domain.Product, error) {
	query := `SELECT` + productColumns + productFrom + `
		WHERE p.is_active AND p.is_featured
		ORDER BY p.created_at DESC
		LIMIT $1`
	return r.selectMany(ctx, query, limit)
}

// ListByCategoryName retrieves active products by cached category name
func (r *ProductRepository) ListByCategoryName(ctx context.Context, name string) ([]*domain.Product, error) {
	query := `SELECT` + productColumns + productFrom + `
		WHERE p.is_active AND p.category_name = $1
		ORDER BY p.created_at DESC`
	return r.selectMany(ctx, query, name)
}

// ListByCategoryID retrieves active products linked to the category
func (r *ProductRepository) ListByCategoryID(ctx context.Context, categoryID int64) ([]*domain.Product, error) {
	query := `SELECT` + productColumns + productFrom + `
		WHERE p.is_active AND p.category_id = $1
		ORDER BY p.created_at DESC`
	return r.selectMany(ctx, query, categoryID)
}

// ListBrands retrieves the distinct brands of active products
func (r *ProductRepository) ListBrands(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT brand FROM products WHERE is_active ORDER BY brand ASC`

	var brands []string
	if err := r.db.SelectContext(ctx, &brands, query); err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *ProductRepository) selectMany(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}
	return products, nil
}

// FindFiltered composes the listing predicate, counts the matches, then
// fetches the requested page. CategoryID wins over CategoryName when both
// are supplied; every other filter applies conjunctively.
func (r *ProductRepository) FindFiltered(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int, error) {
	conditions := []string{"p.is_active"}
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		pattern := arg("%" + filter.Search + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(p.name ILIKE %[1]s OR p.description ILIKE %[1]s OR p.tags ILIKE %[1]s)", pattern))
	}

	if filter.CategoryID != nil {
		conditions = append(conditions, "p.category_id = "+arg(*filter.CategoryID))
	} else if filter.CategoryName != "" {
		conditions = append(conditions, "p.category_name = "+arg(filter.CategoryName))
	}

	if filter.Brand != "" {
		conditions = append(conditions, "p.brand = "+arg(filter.Brand))
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, "p.price >= "+arg(*filter.MinPrice))
	}

	if filter.MaxPrice != nil {
		conditions = append(conditions, "p.price <= "+arg(*filter.MaxPrice))
	}

	if filter.IsFeatured != nil {
		conditions = append(conditions, "p.is_featured = "+arg(*filter.IsFeatured))
	}

	if filter.OnDiscount != nil && *filter.OnDiscount {
		conditions = append(conditions, "p.discount_price IS NOT NULL")
	}

	if filter.InStock != nil && *filter.InStock {
		conditions = append(conditions, "p.stock > 0")
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM products p ` + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	var orderBy string
	switch filter.SortBy {
	case domain.SortPriceAsc:
		orderBy = "p.price ASC"
	case domain.SortPriceDesc:
		orderBy = "p.price DESC"
	case domain.SortRating:
		orderBy = "p.rating DESC"
	default:
		orderBy = "p.created_at DESC"
	}

	pageQuery := `SELECT` + productColumns + productFrom + where +
		" ORDER BY " + orderBy +
		" LIMIT " + arg(filter.PageSize) +
		" OFFSET " + arg(filter.Offset())

	products, err := r.selectMany(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Update overwrites all mutable product fields
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, discount_price = $4,
		    stock = $5, category_id = $6, category_name = $7, brand = $8,
		    color = $9, size = $10, material = $11, image_url = $12,
		    is_active = $13, is_featured = $14, updated_at = $15,
		    sku = $16, tags = $17
		WHERE id = $18
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.DiscountPrice,
		product.Stock,
		product.CategoryID,
		product.CategoryName,
		product.Brand,
		product.Color,
		product.Size,
		product.Material,
		product.ImageURL,
		product.IsActive,
		product.IsFeatured,
		product.UpdatedAt,
		product.Sku,
		product.Tags,
		product.ID,
	)
	if err != nil {
		return err
	}

	return checkAffected(result)
}

// UpdateStock overwrites the stock count. Not an increment: the given
// quantity replaces whatever was stored.
func (r *ProductRepository) UpdateStock(ctx context.Context, id int64, quantity int) error {
	query := `UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, quantity, id)
	if err != nil {
		return err
	}

	return checkAffected(result)
}

// Delete soft-deletes a product by clearing its active flag
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
