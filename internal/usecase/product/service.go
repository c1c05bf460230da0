package product

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/logger"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/validator"
)

const defaultFeaturedCount = 8

// Cache defines the caching operations the product service relies on
type Cache interface {
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	InvalidateAllProductCache(ctx context.Context, productID int64) error
	InvalidateCategoryList(ctx context.Context) error
}

// EventPublisher defines the interface for publishing catalog events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// ProductEvent is the payload published on product lifecycle changes
type ProductEvent struct {
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	ProductID int64     `json:"product_id"`
}

// CreateInput holds the fields accepted when creating a product
type CreateInput struct {
	Name          string           `json:"name" validate:"required,min=1,max=100"`
	Description   string           `json:"description" validate:"max=500"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Stock         int              `json:"stock" validate:"gte=0"`
	CategoryID    *int64           `json:"category_id,omitempty"`
	CategoryName  *string          `json:"category_name,omitempty" validate:"omitempty,max=50"`
	Brand         string           `json:"brand" validate:"max=50"`
	Color         *string          `json:"color,omitempty" validate:"omitempty,max=50"`
	Size          *string          `json:"size,omitempty" validate:"omitempty,max=50"`
	Material      *string          `json:"material,omitempty" validate:"omitempty,max=50"`
	ImageURL      *string          `json:"image_url,omitempty" validate:"omitempty,max=200"`
	IsFeatured    bool             `json:"is_featured"`
	Sku           *string          `json:"sku,omitempty" validate:"omitempty,max=20"`
	Tags          *string          `json:"tags,omitempty" validate:"omitempty,max=100"`
}

// UpdateInput holds the fields accepted when updating a product. Nil fields
// keep their prior value, except DiscountPrice, Color, Size, Material,
// ImageURL, Sku and Tags, which always overwrite: omitting one clears it.
type UpdateInput struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description   *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Stock         *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	CategoryID    *int64           `json:"category_id,omitempty"`
	CategoryName  *string          `json:"category_name,omitempty" validate:"omitempty,max=50"`
	Brand         *string          `json:"brand,omitempty" validate:"omitempty,max=50"`
	Color         *string          `json:"color,omitempty" validate:"omitempty,max=50"`
	Size          *string          `json:"size,omitempty" validate:"omitempty,max=50"`
	Material      *string          `json:"material,omitempty" validate:"omitempty,max=50"`
	ImageURL      *string          `json:"image_url,omitempty" validate:"omitempty,max=200"`
	IsActive      *bool            `json:"is_active,omitempty"`
	IsFeatured    *bool            `json:"is_featured,omitempty"`
	Sku           *string          `json:"sku,omitempty" validate:"omitempty,max=20"`
	Tags          *string          `json:"tags,omitempty" validate:"omitempty,max=100"`
}

// Service handles product business logic and the listing query engine
type Service struct {
	repo          domain.ProductRepository
	categories    domain.CategoryRepository
	cache         Cache
	publisher     EventPublisher
	featuredCount int
	logger        *logger.Logger
}

// NewService creates a new product service. featuredCount is the fallback
// size of the featured listing; non-positive values take the built-in default.
func NewService(
	repo domain.ProductRepository,
	categories domain.CategoryRepository,
	cache Cache,
	publisher EventPublisher,
	featuredCount int,
	log *logger.Logger,
) *Service {
	if featuredCount <= 0 {
		featuredCount = defaultFeaturedCount
	}

	return &Service{
		repo:          repo,
		categories:    categories,
		cache:         cache,
		publisher:     publisher,
		featuredCount: featuredCount,
		logger:        log,
	}
}

func requireAdmin(auth domain.AuthContext) error {
	if !auth.Authenticated {
		return domain.ErrUnauthorized
	}
	if !auth.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// Create creates a new product. When a category ID is given the category must
// exist and its name is copied onto the product's cached category-name field.
func (s *Service) Create(ctx context.Context, auth domain.AuthContext, in CreateInput) (*domain.Product, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	if err := validator.Get().Struct(in); err != nil {
		s.logger.Error("Product validation failed", err)
		return nil, domain.ErrInvalidInput
	}
	if !in.Price.IsPositive() {
		s.logger.Debugf("Rejected non-positive price %s", in.Price)
		return nil, domain.ErrInvalidInput
	}

	categoryName := domain.DefaultCategoryName
	if in.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		categoryName = category.Name
	} else if in.CategoryName != nil && *in.CategoryName != "" {
		// Name without an ID is stored literally, unlinked to any category row.
		categoryName = *in.CategoryName
	}

	brand := in.Brand
	if brand == "" {
		brand = domain.DefaultBrand
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		Stock:         in.Stock,
		CategoryID:    in.CategoryID,
		CategoryName:  categoryName,
		Brand:         brand,
		Color:         in.Color,
		Size:          in.Size,
		Material:      in.Material,
		ImageURL:      in.ImageURL,
		Rating:        0,
		ReviewCount:   0,
		IsActive:      true,
		IsFeatured:    in.IsFeatured,
		CreatedAt:     now,
		UpdatedAt:     now,
		Sku:           in.Sku,
		Tags:          in.Tags,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", err)
		return nil, err
	}

	if err := s.cache.InvalidateCategoryList(ctx); err != nil {
		s.logger.Warnf("Failed to invalidate category list cache: %v", err)
	}
	s.publishEvent(ctx, "product.created", product.ID)

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("Product created successfully")

	return s.repo.GetByID(ctx, product.ID)
}

// Get retrieves an active product, cached
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.cache.GetProduct(ctx, id)
	if err == nil {
		s.logger.Debugf("Cache hit for product %d", id)
		return product, nil
	}

	product, err = s.repo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			s.logger.Debugf("Product not found: %d", id)
		} else {
			s.logger.Error("Failed to get product", err)
		}
		return nil, err
	}

	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.logger.Warnf("Failed to cache product %d: %v", id, err)
	}

	return product, nil
}

// List retrieves all active products, newest first
func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, err
	}
	return products, nil
}

// ListFeatured retrieves the newest featured products
func (s *Service) ListFeatured(ctx context.Context, count int) ([]*domain.Product, error) {
	if count <= 0 {
		count = s.featuredCount
	}

	products, err := s.repo.ListFeatured(ctx, count)
	if err != nil {
		s.logger.Error("Failed to list featured products", err)
		return nil, err
	}
	return products, nil
}

// ListByCategoryName retrieves active products whose cached category name
// matches exactly
func (s *Service) ListByCategoryName(ctx context.Context, name string) ([]*domain.Product, error) {
	products, err := s.repo.ListByCategoryName(ctx, name)
	if err != nil {
		s.logger.Error("Failed to list products by category name", err)
		return nil, err
	}
	return products, nil
}

// ListByCategoryID retrieves active products linked to the category
func (s *Service) ListByCategoryID(ctx context.Context, categoryID int64) ([]*domain.Product, error) {
	products, err := s.repo.ListByCategoryID(ctx, categoryID)
	if err != nil {
		s.logger.Error("Failed to list products by category id", err)
		return nil, err
	}
	return products, nil
}

// Brands retrieves the distinct brands of active products
func (s *Service) Brands(ctx context.Context) ([]string, error) {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		s.logger.Error("Failed to list brands", err)
		return nil, err
	}
	return brands, nil
}

// ListFiltered runs the filter against active products and returns one page
// plus pagination metadata. Zero page and page size take the defaults; other
// out-of-range values are the caller's responsibility.
func (s *Service) ListFiltered(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	products, total, err := s.repo.FindFiltered(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to run filtered product query", err)
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.PageSize)))

	return &domain.ProductPage{
		Products:   products,
		TotalCount: total,
		TotalPages: totalPages,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

// Update applies a partial update. A category ID change re-validates the
// category and re-syncs the cached name; a name-only change rewrites the
// cached name without touching the link. DiscountPrice, Color, Size,
// Material, ImageURL, Sku and Tags overwrite unconditionally.
func (s *Service) Update(ctx context.Context, auth domain.AuthContext, id int64, in UpdateInput) (*domain.Product, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	if err := validator.Get().Struct(in); err != nil {
		s.logger.Error("Product validation failed", err)
		return nil, domain.ErrInvalidInput
	}
	if in.Price != nil && !in.Price.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	product, err := s.repo.GetByIDAny(ctx, id)
	if err != nil {
		return nil, err
	}

	// Category re-assignment and active-flag flips both move the product
	// between per-category active counts.
	countsChanged := in.IsActive != nil && *in.IsActive != product.IsActive

	if in.CategoryID != nil && (product.CategoryID == nil || *in.CategoryID != *product.CategoryID) {
		category, err := s.categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = in.CategoryID
		product.CategoryName = category.Name
		countsChanged = true
	} else if in.CategoryName != nil && *in.CategoryName != "" && *in.CategoryName != product.CategoryName {
		product.CategoryName = *in.CategoryName
	}

	if in.Name != nil && *in.Name != "" {
		product.Name = *in.Name
	}
	if in.Description != nil && *in.Description != "" {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Brand != nil && *in.Brand != "" {
		product.Brand = *in.Brand
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}

	// Explicit-clear fields: whatever arrived replaces the stored value,
	// including nil.
	product.DiscountPrice = in.DiscountPrice
	product.Color = in.Color
	product.Size = in.Size
	product.Material = in.Material
	product.ImageURL = in.ImageURL
	product.Sku = in.Sku
	product.Tags = in.Tags

	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", err)
		return nil, err
	}

	if err := s.cache.InvalidateAllProductCache(ctx, id); err != nil {
		s.logger.Warnf("Failed to invalidate cache for product %d: %v", id, err)
	}
	if countsChanged {
		if err := s.cache.InvalidateCategoryList(ctx); err != nil {
			s.logger.Warnf("Failed to invalidate category list cache: %v", err)
		}
	}
	s.publishEvent(ctx, "product.updated", id)

	s.logger.WithFields(map[string]interface{}{
		"product_id": id,
	}).Info("Product updated successfully")

	return s.repo.GetByIDAny(ctx, id)
}

// UpdateStock overwrites the stock count with the given quantity
func (s *Service) UpdateStock(ctx context.Context, auth domain.AuthContext, id int64, quantity int) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}

	if quantity < 0 {
		return domain.ErrInvalidInput
	}

	if err := s.repo.UpdateStock(ctx, id, quantity); err != nil {
		if err != domain.ErrNotFound {
			s.logger.Error("Failed to update stock", err)
		}
		return err
	}

	if err := s.cache.InvalidateAllProductCache(ctx, id); err != nil {
		s.logger.Warnf("Failed to invalidate cache for product %d: %v", id, err)
	}
	s.publishEvent(ctx, "product.stock_updated", id)

	s.logger.WithFields(map[string]interface{}{
		"product_id": id,
		"stock":      quantity,
	}).Info("Product stock updated")

	return nil
}

// Delete soft-deletes a product. Reviews are left untouched.
func (s *Service) Delete(ctx context.Context, auth domain.AuthContext, id int64) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err != domain.ErrNotFound {
			s.logger.Error("Failed to delete product", err)
		}
		return err
	}

	if err := s.cache.InvalidateAllProductCache(ctx, id); err != nil {
		s.logger.Warnf("Failed to invalidate cache for product %d: %v", id, err)
	}
	if err := s.cache.InvalidateCategoryList(ctx); err != nil {
		s.logger.Warnf("Failed to invalidate category list cache: %v", err)
	}
	s.publishEvent(ctx, "product.deleted", id)

	s.logger.WithFields(map[string]interface{}{
		"product_id": id,
	}).Info("Product soft-deleted")

	return nil
}

// publishEvent publishes a product event (non-blocking)
func (s *Service) publishEvent(ctx context.Context, eventType string, productID int64) {
	event := ProductEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		ProductID: productID,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for product %d", productID)
		return
	}

	go func() {
		if err := s.publisher.Publish(context.Background(), "catalog.events", data); err != nil {
			s.logger.Errorf(err, "Failed to publish event for product %d", productID)
		}
	}()
}
