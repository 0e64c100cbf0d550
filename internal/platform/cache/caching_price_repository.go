// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_collector/internal/feature/stocks/domain/entity"
	"stock_collector/internal/feature/stocks/usecase"
)

// PriceStore combines the read and write sides of the price repository,
// so the decorator can invalidate on writes.
type PriceStore interface {
	usecase.PriceRepository
	usecase.PriceReader
}

// CachingPriceRepository decorates a price repository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingPriceRepository struct {
	inner     PriceStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingPriceRepository decorates a price repository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "prices".
func NewCachingPriceRepository(rdb *redis.Client, ttl time.Duration, inner PriceStore, namespace string) *CachingPriceRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpsertBatch inserts or updates prices and invalidates related cache entries.
func (c *CachingPriceRepository) UpsertBatch(ctx context.Context, prices []entity.PricePoint) error {
	// First upsert to the underlying repository (PostgreSQL)
	if err := c.inner.UpsertBatch(ctx, prices); err != nil {
		return err
	}
	// Exit early if Redis is not configured or there are no prices
	if c.rdb == nil || len(prices) == 0 {
		return nil
	}

	// Invalidate affected cache entries (keys per stock)
	seen := map[uint]struct{}{}
	for _, p := range prices {
		if _, ok := seen[p.StockID]; ok {
			continue
		}
		seen[p.StockID] = struct{}{}
		prefix := c.cacheKeyPrefix(p.StockID)
		_ = c.deleteByPattern(ctx, prefix+"*") // Best effort: don't fail if cache deletion fails
	}
	return nil
}

// FindRecent retrieves prices, checking cache first then falling back to the database.
func (c *CachingPriceRepository) FindRecent(ctx context.Context, stockID uint, limit int) ([]entity.PricePoint, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindRecent(ctx, stockID, limit)
	}

	key := c.cacheKey(stockID, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PricePoint
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindRecent(ctx, stockID, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingPriceRepository) cacheKey(stockID uint, limit int) string {
	return fmt.Sprintf("%s:%d:%d", c.namespace, stockID, limit)
}

// cacheKeyPrefix generates a prefix for invalidating related cache entries.
func (c *CachingPriceRepository) cacheKeyPrefix(stockID uint) string {
	return fmt.Sprintf("%s:%d:", c.namespace, stockID)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPriceRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
