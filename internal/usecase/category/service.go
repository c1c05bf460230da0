package category

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/logger"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/validator"
)

// Cache defines the caching operations the category service relies on
type Cache interface {
	GetCategoryList(ctx context.Context) ([]*domain.Category, error)
	SetCategoryList(ctx context.Context, categories []*domain.Category) error
	InvalidateCategoryList(ctx context.Context) error
	InvalidateAllProductCache(ctx context.Context, productID int64) error
}

// EventPublisher defines the interface for publishing catalog events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// CategoryEvent is the payload published on category lifecycle changes
type CategoryEvent struct {
	EventType       string    `json:"event_type"`
	Timestamp       time.Time `json:"timestamp"`
	CategoryID      int64     `json:"category_id"`
	RemovedProducts []int64   `json:"removed_products,omitempty"`
}

// CreateInput holds the fields accepted when creating a category
type CreateInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=200"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,max=200"`
}

// UpdateInput holds the fields accepted when updating a category.
// Nil fields keep their prior value.
type UpdateInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=200"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,max=200"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Service handles category business logic, including the destructive cascade
// delete that removes a category's products and their reviews
type Service struct {
	repo      domain.CategoryRepository
	cache     Cache
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a new category service
func NewService(repo domain.CategoryRepository, cache Cache, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    log,
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

// Create creates a new category. The name must be unique case-insensitively.
func (s *Service) Create(ctx context.Context, auth domain.AuthContext, in CreateInput) (*domain.Category, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	if err := validator.Get().Struct(in); err != nil {
		s.logger.Error("Category validation failed", err)
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.repo.ExistsByName(ctx, in.Name, 0)
	if err != nil {
		s.logger.Error("Failed to check category name", err)
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateName
	}

	category := &domain.Category{
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", err)
		return nil, err
	}

	s.invalidateList(ctx)
	s.publishEvent(ctx, "category.created", category.ID, nil)

	s.logger.WithFields(map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	}).Info("Category created successfully")

	return category, nil
}

// Get retrieves a category with its active-product count
func (s *Service) Get(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			s.logger.Debugf("Category not found: %d", id)
		} else {
			s.logger.Error("Failed to get category", err)
		}
		return nil, err
	}

	return category, nil
}

// List retrieves all categories ordered by name, cached
func (s *Service) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.cache.GetCategoryList(ctx)
	if err == nil {
		s.logger.Debug("Cache hit for category list")
		return categories, nil
	}

	categories, err = s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", err)
		return nil, err
	}

	if err := s.cache.SetCategoryList(ctx, categories); err != nil {
		s.logger.Warnf("Failed to cache category list: %v", err)
	}

	return categories, nil
}

// ListActiveNames retrieves the distinct names of active categories
func (s *Service) ListActiveNames(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListActiveNames(ctx)
	if err != nil {
		s.logger.Error("Failed to list category names", err)
		return nil, err
	}
	return names, nil
}

// Update mutates the supplied fields; a name change re-checks uniqueness
// against every other category.
func (s *Service) Update(ctx context.Context, auth domain.AuthContext, id int64, in UpdateInput) (*domain.Category, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	if err := validator.Get().Struct(in); err != nil {
		s.logger.Error("Category validation failed", err)
		return nil, domain.ErrInvalidInput
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != "" && *in.Name != category.Name {
		exists, err := s.repo.ExistsByName(ctx, *in.Name, id)
		if err != nil {
			s.logger.Error("Failed to check category name", err)
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateName
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = in.Description
	}
	if in.ImageURL != nil {
		category.ImageURL = in.ImageURL
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}

	if err := s.repo.Update(ctx, category); err != nil {
		s.logger.Error("Failed to update category", err)
		return nil, err
	}

	s.invalidateList(ctx)
	s.publishEvent(ctx, "category.updated", id, nil)

	s.logger.WithFields(map[string]interface{}{
		"category_id": id,
	}).Info("Category updated successfully")

	return s.repo.GetByID(ctx, id)
}

// ToggleActive flips the category's active flag
func (s *Service) ToggleActive(ctx context.Context, auth domain.AuthContext, id int64) (*domain.Category, error) {
	if err := requireAdmin(auth); err != nil {
		return nil, err
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.IsActive = !category.IsActive

	if err := s.repo.Update(ctx, category); err != nil {
		s.logger.Error("Failed to toggle category", err)
		return nil, err
	}

	s.invalidateList(ctx)
	s.publishEvent(ctx, "category.updated", id, nil)

	s.logger.WithFields(map[string]interface{}{
		"category_id": id,
		"is_active":   category.IsActive,
	}).Info("Category status toggled")

	return category, nil
}

// Delete removes the category, all of its products and their reviews.
// Unlike the product soft-delete this is a physical, transactional removal
// covering active and inactive products alike.
func (s *Service) Delete(ctx context.Context, auth domain.AuthContext, id int64) error {
	if err := requireAdmin(auth); err != nil {
		return err
	}

	removedProducts, err := s.repo.Delete(ctx, id)
	if err != nil {
		if err != domain.ErrNotFound {
			s.logger.Error("Failed to delete category", err)
		}
		return err
	}

	s.invalidateList(ctx)
	for _, productID := range removedProducts {
		if err := s.cache.InvalidateAllProductCache(ctx, productID); err != nil {
			s.logger.Warnf("Failed to invalidate cache for product %d: %v", productID, err)
		}
	}

	s.publishEvent(ctx, "category.deleted", id, removedProducts)

	s.logger.WithFields(map[string]interface{}{
		"category_id":      id,
		"removed_products": len(removedProducts),
	}).Info("Category deleted with cascade")

	return nil
}

func (s *Service) invalidateList(ctx context.Context) {
	if err := s.cache.InvalidateCategoryList(ctx); err != nil {
		s.logger.Warnf("Failed to invalidate category list cache: %v", err)
	}
}

// publishEvent publishes a category event (non-blocking)
func (s *Service) publishEvent(ctx context.Context, eventType string, categoryID int64, removedProducts []int64) {
	event := CategoryEvent{
		EventType:       eventType,
		Timestamp:       time.Now().UTC(),
		CategoryID:      categoryID,
		RemovedProducts: removedProducts,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for category %d", categoryID)
		return
	}

	go func() {
		if err := s.publisher.Publish(context.Background(), "catalog.events", data); err != nil {
			s.logger.Errorf(err, "Failed to publish event for category %d", categoryID)
		}
	}()
}
