package main

import (
	"context"
	"log"
	"os"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/db"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	repo := productrepo.NewPostgres(pool, logger)
	count, err := seed.Apply(ctx, repo)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}
	invalidateCatalog(ctx, cfg, logger, repo)

	logger.Printf("seed applied (%d products)", count)
}

func invalidateCatalog(ctx context.Context, cfg config.Config, logger *log.Logger, loader cache.ProductLoader) {
	client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Printf("catalog cache not invalidated: %v", err)
		return
	}
	if client == nil {
		return
	}
	defer client.Close()
	if err := cache.NewCatalogCache(client, loader, cfg.CatalogCacheTTL, logger).Invalidate(ctx); err != nil {
		logger.Printf("catalog cache not invalidated: %v", err)
	}
}
