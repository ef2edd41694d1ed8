package cart

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

type cartRepo interface {
	Get(ctx context.Context, userID string) (domain.Cart, error)
	Save(ctx context.Context, userID string, cart domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

type catalogSource interface {
	Snapshot(ctx context.Context) (domain.Catalog, error)
}

// Service applies cart mutations as load, mutate, full-document save.
// Concurrent writers for the same user are last-write-wins.
type Service struct {
	repo    cartRepo
	catalog catalogSource
	engine  *pricing.Engine
}

func New(repo cartRepo, catalog catalogSource, engine *pricing.Engine) *Service {
	return &Service{repo: repo, catalog: catalog, engine: engine}
}

// Totals is the live quote for the stored cart.
type Totals struct {
	Count     int               `json:"count"`
	Breakdown pricing.Breakdown `json:"totals"`
}

// Add adds qty to the stored variant quantity. A negative qty subtracts, and
// an entry that drops to zero or below is removed.
func (s *Service) Add(ctx context.Context, userID, productID, variant string, qty int) (domain.Cart, error) {
	return s.mutate(ctx, userID, productID, variant, func(c *domain.Cart) {
		c.AddQuantity(productID, variant, qty)
	})
}

// Update sets the absolute quantity; zero or less removes the entry.
func (s *Service) Update(ctx context.Context, userID, productID, variant string, qty int) (domain.Cart, error) {
	return s.mutate(ctx, userID, productID, variant, func(c *domain.Cart) {
		c.SetQuantity(productID, variant, qty)
	})
}

func (s *Service) Get(ctx context.Context, userID string) (domain.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Cart{}, fmt.Errorf("user id required: %w", domain.ErrInvalidInput)
	}
	return s.repo.Get(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id required: %w", domain.ErrInvalidInput)
	}
	return s.repo.Delete(ctx, userID)
}

// Totals prices the stored cart against the live catalog.
func (s *Service) Totals(ctx context.Context, userID string) (Totals, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return Totals{}, err
	}
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return Totals{}, err
	}
	return Totals{
		Count:     cart.TotalCount(),
		Breakdown: s.engine.Quote(cart.ResolveAmount(catalog)),
	}, nil
}

func (s *Service) mutate(ctx context.Context, userID, productID, variant string, apply func(*domain.Cart)) (domain.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Cart{}, fmt.Errorf("user id required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(productID) == "" {
		return domain.Cart{}, fmt.Errorf("item id required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(variant) == "" {
		return domain.Cart{}, fmt.Errorf("size required: %w", domain.ErrInvalidInput)
	}
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	apply(&cart)
	if err := s.repo.Save(ctx, userID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}
