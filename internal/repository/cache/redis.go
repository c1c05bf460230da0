package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
)

// RedisCache implements read caching for products, the category list and
// per-product review pages
type RedisCache struct {
	client          *redis.Client
	productTTL      time.Duration
	categoryListTTL time.Duration
	reviewsListTTL  time.Duration
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(client *redis.Client, productTTL, categoryListTTL, reviewsListTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:          client,
		productTTL:      productTTL,
		categoryListTTL: categoryListTTL,
		reviewsListTTL:  reviewsListTTL,
	}
}

const categoryListKey = "catalog:categories"

func (c *RedisCache) productKey(productID int64) string {
	return fmt.Sprintf("catalog:product:%d", productID)
}

func (c *RedisCache) reviewsListKey(productID int64, limit, offset int) string {
	return fmt.Sprintf("catalog:product:%d:reviews:limit:%d:offset:%d", productID, limit, offset)
}

// reviewsKeysSet tracks every cached review page of a product so all pages
// can be dropped together on invalidation.
func (c *RedisCache) reviewsKeysSet(productID int64) string {
	return fmt.Sprintf("catalog:product:%d:review_keys", productID)
}

// GetProduct retrieves a cached product
func (c *RedisCache) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	val, err := c.client.Get(ctx, c.productKey(productID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// SetProduct stores a product in cache
func (c *RedisCache) SetProduct(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.productKey(product.ID), data, c.productTTL).Err()
}

// InvalidateProduct removes a product from cache
func (c *RedisCache) InvalidateProduct(ctx context.Context, productID int64) error {
	return c.client.Del(ctx, c.productKey(productID)).Err()
}

// GetCategoryList retrieves the cached category list
func (c *RedisCache) GetCategoryList(ctx context.Context) ([]*domain.Category, error) {
	val, err := c.client.Get(ctx, categoryListKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var categories []*domain.Category
	if err := json.Unmarshal([]byte(val), &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// SetCategoryList stores the category list in cache
func (c *RedisCache) SetCategoryList(ctx context.Context, categories []*domain.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoryListKey, data, c.categoryListTTL).Err()
}

// InvalidateCategoryList removes the category list from cache
func (c *RedisCache) InvalidateCategoryList(ctx context.Context) error {
	return c.client.Del(ctx, categoryListKey).Err()
}

// reviewsPage is the cached form of one review page: the reviews plus the
// product's total review count, so a hit serves the listing without a store
// round trip.
type reviewsPage struct {
	Reviews []*domain.Review `json:"reviews"`
	Total   int              `json:"total"`
}

// GetReviewsList retrieves a cached review page and total count for a product
func (c *RedisCache) GetReviewsList(ctx context.Context, productID int64, limit, offset int) ([]*domain.Review, int, error) {
	val, err := c.client.Get(ctx, c.reviewsListKey(productID, limit, offset)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, err
	}

	var page reviewsPage
	if err := json.Unmarshal([]byte(val), &page); err != nil {
		return nil, 0, err
	}

	return page.Reviews, page.Total, nil
}

// SetReviewsList stores a review page with its total count and tracks its key
func (c *RedisCache) SetReviewsList(ctx context.Context, productID int64, limit, offset int, reviews []*domain.Review, total int) error {
	key := c.reviewsListKey(productID, limit, offset)
	trackingKey := c.reviewsKeysSet(productID)

	data, err := json.Marshal(reviewsPage{Reviews: reviews, Total: total})
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, c.reviewsListTTL)
	pipe.SAdd(ctx, trackingKey, key)
	pipe.Expire(ctx, trackingKey, c.reviewsListTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// InvalidateReviewsList removes all cached review pages for a product
func (c *RedisCache) InvalidateReviewsList(ctx context.Context, productID int64) error {
	trackingKey := c.reviewsKeysSet(productID)

	keys, err := c.client.SMembers(ctx, trackingKey).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	if len(keys) > 0 {
		keys = append(keys, trackingKey)
		return c.client.Unlink(ctx, keys...).Err()
	}

	return nil
}

// InvalidateAllProductCache invalidates every cache entry tied to a product
func (c *RedisCache) InvalidateAllProductCache(ctx context.Context, productID int64) error {
	if err := c.InvalidateProduct(ctx, productID); err != nil && err != redis.Nil {
		return err
	}

	if err := c.InvalidateReviewsList(ctx, productID); err != nil && err != redis.Nil {
		return err
	}

	return nil
}
