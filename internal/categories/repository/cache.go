package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/homepro-hq/marketplace-backend/internal/categories/domain"
)

const (
	cacheKey        = "intake:categories" // JSON array of all active categories
	defaultCacheTTL = time.Hour
)

// Cache is a Redis read-through cache for the category catalogue. The
// catalogue changes rarely, so a TTL plus the cron refresher keeps it warm.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached catalogue. The second return value reports whether
// the cache held an entry.
func (c *Cache) Get(ctx context.Context) ([]domain.Category, bool, error) {
	data, err := c.client.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get categories cache: %w", err)
	}

	var cats []domain.Category
	if err := json.Unmarshal([]byte(data), &cats); err != nil {
		return nil, false, fmt.Errorf("unmarshal categories cache: %w", err)
	}
	return cats, true, nil
}

// Set replaces the cached catalogue.
func (c *Cache) Set(ctx context.Context, cats []domain.Category) error {
	data, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set categories cache: %w", err)
	}
	return nil
}
