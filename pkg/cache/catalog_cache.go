package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CatalogCacheTTL bounds how stale a cached catalog snapshot may get if an
	// invalidation is ever lost.
	CatalogCacheTTL = time.Hour

	catalogCacheKey = "catalog:resolved"
)

// ErrCacheMiss is returned when no catalog snapshot is cached.
var ErrCacheMiss = errors.New("catalog cache miss")

// CatalogCache stores the resolved item catalog as a single JSON snapshot.
// The catalog is re-derived from seed + custom + override layers on every
// write, so the snapshot granularity is the whole catalog, not per item.
// The catalog service owns the encoding; this cache moves opaque bytes.
type CatalogCache struct {
	client *RedisClient
}

// NewCatalogCache creates a CatalogCache backed by the given RedisClient.
func NewCatalogCache(r *RedisClient) *CatalogCache {
	return &CatalogCache{client: r}
}

// Get retrieves the cached catalog snapshot. Returns ErrCacheMiss when the
// key does not exist or has expired.
func (c *CatalogCache) Get(ctx context.Context) ([]byte, error) {
	raw, err := c.client.Client().Get(ctx, catalogCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("catalog cache get: %w", err)
	}
	return raw, nil
}

// Set writes the catalog snapshot with the standard TTL.
func (c *CatalogCache) Set(ctx context.Context, snapshot []byte) error {
	if err := c.client.Client().Set(ctx, catalogCacheKey, snapshot, CatalogCacheTTL).Err(); err != nil {
		return fmt.Errorf("catalog cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot. Called after any catalog write.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Client().Del(ctx, catalogCacheKey).Err(); err != nil {
		return fmt.Errorf("catalog cache invalidate: %w", err)
	}
	return nil
}
