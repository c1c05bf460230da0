package review

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/logger"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/validator"
)

// Cache defines the caching operations the review service relies on. Review
// pages are cached together with the total count so a hit answers the whole
// listing without touching the store.
type Cache interface {
	GetReviewsList(ctx context.Context, productID int64, limit, offset int) ([]*domain.Review, int, error)
	SetReviewsList(ctx context.Context, productID int64, limit, offset int, reviews []*domain.Review, total int) error
	InvalidateAllProductCache(ctx context.Context, productID int64) error
}

// EventPublisher defines the interface for publishing catalog events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// ReviewEvent is the payload published when a review is created
type ReviewEvent struct {
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	ProductID int64     `json:"product_id"`
	ReviewID  int64     `json:"review_id"`
}

// CreateInput holds the fields accepted when creating a review. The user id
// comes from the request body and is trusted as submitted; only the
// authentication decision itself is enforced here.
type CreateInput struct {
	ProductID int64   `json:"product_id" validate:"required"`
	UserID    int64   `json:"user_id" validate:"required"`
	Username  string  `json:"username" validate:"required,min=1,max=100"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

// Service handles review business logic. The store keeps the product's
// denormalized rating and review count in step with every insert.
type Service struct {
	repo      domain.ReviewRepository
	cache     Cache
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a new review service
func NewService(repo domain.ReviewRepository, cache Cache, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    log,
	}
}

// Create adds a review for a product. One review per user per product;
// the product must exist and be active.
func (s *Service) Create(ctx context.Context, auth domain.AuthContext, in CreateInput) (*domain.Review, error) {
	if !auth.Authenticated {
		return nil, domain.ErrUnauthorized
	}

	if err := validator.Get().Struct(in); err != nil {
		s.logger.Error("Review validation failed", err)
		return nil, domain.ErrInvalidInput
	}

	review := &domain.Review{
		ProductID: in.ProductID,
		UserID:    in.UserID,
		Username:  in.Username,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		switch err {
		case domain.ErrNotFound:
			s.logger.Debugf("Review rejected, product %d not found or inactive", in.ProductID)
		case domain.ErrAlreadyExists:
			s.logger.Debugf("Review rejected, user %d already reviewed product %d", in.UserID, in.ProductID)
		default:
			s.logger.Error("Failed to create review", err)
		}
		return nil, err
	}

	// The stored rating changed, so the cached product copy is stale.
	if err := s.cache.InvalidateAllProductCache(ctx, in.ProductID); err != nil {
		s.logger.Warnf("Failed to invalidate cache for product %d: %v", in.ProductID, err)
	}

	s.publishEvent(ctx, "review.created", review)

	s.logger.WithFields(map[string]interface{}{
		"review_id":  review.ID,
		"product_id": review.ProductID,
		"user_id":    review.UserID,
		"rating":     review.Rating,
	}).Info("Review created successfully")

	return review, nil
}

// ListByProduct retrieves reviews for a product with caching, newest first
func (s *Service) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*domain.Review, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	reviews, total, err := s.cache.GetReviewsList(ctx, productID, limit, offset)
	if err == nil {
		s.logger.Debugf("Cache hit for product %d reviews (limit=%d, offset=%d)", productID, limit, offset)
		return reviews, total, nil
	}

	reviews, err = s.repo.ListByProductID(ctx, productID, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list reviews", err)
		return nil, 0, err
	}

	total, err = s.repo.CountByProductID(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to count reviews", err)
		return nil, 0, err
	}

	if err := s.cache.SetReviewsList(ctx, productID, limit, offset, reviews, total); err != nil {
		s.logger.Warnf("Failed to cache reviews for product %d: %v", productID, err)
	}

	return reviews, total, nil
}

// publishEvent publishes a review event (non-blocking)
func (s *Service) publishEvent(ctx context.Context, eventType string, review *domain.Review) {
	event := ReviewEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		ProductID: review.ProductID,
		ReviewID:  review.ID,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for review %d", review.ID)
		return
	}

	go func() {
		if err := s.publisher.Publish(context.Background(), "catalog.events", data); err != nil {
			s.logger.Errorf(err, "Failed to publish event for review %d", review.ID)
		}
	}()
}
