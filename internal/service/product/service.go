package product

import (
	"context"

	"storefront/internal/domain"
)

type catalogSource interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Snapshot(ctx context.Context) (domain.Catalog, error)
}

// Service serves the read-only catalog used by the storefront and by pricing.
type Service struct {
	catalog catalogSource
}

func New(catalog catalogSource) *Service {
	return &Service{catalog: catalog}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.Products(ctx)
}

// Snapshot returns the live catalog keyed by product id.
func (s *Service) Snapshot(ctx context.Context) (domain.Catalog, error) {
	return s.catalog.Snapshot(ctx)
}
