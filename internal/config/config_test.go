package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("DELIVERY_FEE", "")
	t.Setenv("ORDER_POLL_INTERVAL_SECONDS", "")
	cfg := FromEnv()
	if !cfg.DeliveryFee.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("unexpected delivery fee %s", cfg.DeliveryFee)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("unexpected poll interval %s", cfg.PollInterval)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("TAX_RATE", "0.18")
	t.Setenv("FREE_DELIVERY_THRESHOLD", "499.5")
	t.Setenv("CORS_ORIGINS", "https://shop.example, https://admin.example ,")
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "5")
	t.Setenv("DB_MAX_CONNS", "nope")

	cfg := FromEnv()
	if !cfg.TaxRate.Equal(decimal.RequireFromString("0.18")) {
		t.Fatalf("unexpected tax rate %s", cfg.TaxRate)
	}
	if !cfg.FreeDeliveryThreshold.Equal(decimal.RequireFromString("499.5")) {
		t.Fatalf("unexpected threshold %s", cfg.FreeDeliveryThreshold)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://admin.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.CatalogCacheTTL != 5*time.Second {
		t.Fatalf("unexpected ttl %s", cfg.CatalogCacheTTL)
	}
	if cfg.DBMaxConns != 10 {
		t.Fatalf("expected default max conns on bad input, got %d", cfg.DBMaxConns)
	}
}
