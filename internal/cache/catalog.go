package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"time"

	"storefront/internal/domain"

	"github.com/redis/go-redis/v9"
)

const catalogKey = "catalog:snapshot"

// ProductLoader is the source of truth behind the cache.
type ProductLoader interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
}

// CatalogCache keeps the whole catalog as one JSON value in Redis. A nil
// client disables caching and every call goes to the loader.
type CatalogCache struct {
	client *redis.Client
	loader ProductLoader
	ttl    time.Duration
	logger *log.Logger
}

func NewCatalogCache(client *redis.Client, loader ProductLoader, ttl time.Duration, logger *log.Logger) *CatalogCache {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &CatalogCache{client: client, loader: loader, ttl: ttl, logger: logger}
}

// Products returns the catalog contents, newest first as the loader orders them.
func (c *CatalogCache) Products(ctx context.Context) ([]domain.Product, error) {
	if c.client != nil {
		raw, err := c.client.Get(ctx, catalogKey).Bytes()
		switch {
		case err == nil:
			var products []domain.Product
			if err := json.Unmarshal(raw, &products); err == nil {
				return products, nil
			}
			c.logger.Printf("catalog cache: discarding undecodable snapshot")
		case errors.Is(err, redis.Nil):
		default:
			c.logger.Printf("catalog cache: get error=%v", err)
		}
	}

	products, err := c.loader.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.store(ctx, products)
	return products, nil
}

// Snapshot returns the catalog keyed by product id.
func (c *CatalogCache) Snapshot(ctx context.Context) (domain.Catalog, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewCatalog(products), nil
}

// Invalidate drops the cached snapshot so the next read hits the loader.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, catalogKey).Err()
}

func (c *CatalogCache) store(ctx context.Context, products []domain.Product) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		c.logger.Printf("catalog cache: encode error=%v", err)
		return
	}
	if err := c.client.Set(ctx, catalogKey, raw, c.ttl).Err(); err != nil {
		c.logger.Printf("catalog cache: set error=%v", err)
	}
}
