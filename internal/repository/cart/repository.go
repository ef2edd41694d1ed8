package cart

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists one cart document per user.
type Repository interface {
	Get(ctx context.Context, userID string) (domain.Cart, error)
	Save(ctx context.Context, userID string, cart domain.Cart) error
	Delete(ctx context.Context, userID string) error
}
