package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Rating and ReviewCount are denormalized
// aggregates maintained by the review write path; CategoryName is a cached
// copy of the linked category's name and may drift when updated by name only.
type Product struct {
	ID            int64            `json:"id" db:"id"`
	Name          string           `json:"name" db:"name" validate:"required,min=1,max=100"`
	Description   string           `json:"description" db:"description" validate:"max=500"`
	Price         decimal.Decimal  `json:"price" db:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty" db:"discount_price"`
	Stock         int              `json:"stock" db:"stock" validate:"gte=0"`
	CategoryID    *int64           `json:"category_id,omitempty" db:"category_id"`
	CategoryName  string           `json:"category_name" db:"category_name" validate:"max=50"`
	Brand         string           `json:"brand" db:"brand" validate:"max=50"`
	Color         *string          `json:"color,omitempty" db:"color"`
	Size          *string          `json:"size,omitempty" db:"size"`
	Material      *string          `json:"material,omitempty" db:"material"`
	ImageURL      *string          `json:"image_url,omitempty" db:"image_url"`
	Rating        float64          `json:"rating" db:"rating"`
	ReviewCount   int              `json:"review_count" db:"review_count"`
	IsActive      bool             `json:"is_active" db:"is_active"`
	IsFeatured    bool             `json:"is_featured" db:"is_featured"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
	Sku           *string          `json:"sku,omitempty" db:"sku"`
	Tags          *string          `json:"tags,omitempty" db:"tags"`

	// CategoryImageURL is joined from the owning category at read time;
	// it is never written through this struct.
	CategoryImageURL *string `json:"category_image_url,omitempty" db:"category_image_url"`
}

// FinalPrice is the discount price when present, the regular price otherwise.
func (p *Product) FinalPrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// HasDiscount reports whether a discount price is set.
func (p *Product) HasDiscount() bool {
	return p.DiscountPrice != nil
}

// DiscountPercentage is round(100 * (1 - discount/price)), 0 without a discount.
func (p *Product) DiscountPercentage() decimal.Decimal {
	if p.DiscountPrice == nil || p.Price.IsZero() {
		return decimal.Zero
	}
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	return one.Sub(p.DiscountPrice.Div(p.Price)).Mul(hundred).Round(0)
}

// Sort orders accepted by the product query engine. Anything else falls back
// to newest-first.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// Default values applied when a product is created without them.
const (
	DefaultBrand        = "Generic"
	DefaultCategoryName = "General"
)

// ProductFilter describes one filtered, sorted, paginated listing request.
// CategoryID takes precedence over CategoryName when both are present.
type ProductFilter struct {
	Search       string
	CategoryID   *int64
	CategoryName string
	Brand        string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	IsFeatured   *bool
	OnDiscount   *bool
	InStock      *bool
	SortBy       string
	Page         int
	PageSize     int
}

// Offset is the row offset of the requested page.
func (f ProductFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// ProductPage is one page of a filtered listing plus its pagination metadata.
type ProductPage struct {
	Products   []*Product `json:"products"`
	TotalCount int        `json:"total_count"`
	TotalPages int        `json:"total_pages"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// Create inserts a new product and fills in its generated ID
	Create(ctx context.Context, product *Product) error

	// GetByID retrieves an active product with its category image joined
	GetByID(ctx context.Context, id int64) (*Product, error)

	// GetByIDAny retrieves a product regardless of its active flag,
	// for the mutation paths
	GetByIDAny(ctx context.Context, id int64) (*Product, error)

	// List retrieves all active products, newest first
	List(ctx context.Context) ([]*Product, error)

	// ListFeatured retrieves the newest `limit` active featured products
	ListFeatured(ctx context.Context, limit int) ([]*Product, error)

	// ListByCategoryName retrieves active products whose cached category
	// name matches exactly, newest first
	ListByCategoryName(ctx context.Context, name string) ([]*Product, error)

	// ListByCategoryID retrieves active products linked to the category,
	// newest first
	ListByCategoryID(ctx context.Context, categoryID int64) ([]*Product, error)

	// ListBrands retrieves the distinct brands of active products, ordered
	ListBrands(ctx context.Context) ([]string, error)

	// FindFiltered runs the filter against active products and returns the
	// requested page plus the total match count before paging
	FindFiltered(ctx context.Context, filter ProductFilter) ([]*Product, int, error)

	// Update overwrites all mutable product fields
	Update(ctx context.Context, product *Product) error

	// UpdateStock overwrites the stock count
	UpdateStock(ctx context.Context, id int64, quantity int) error

	// Delete soft-deletes a product by clearing its active flag
	Delete(ctx context.Context, id int64) error
}
