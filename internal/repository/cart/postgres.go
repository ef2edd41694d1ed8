package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// Get returns the stored cart, or an empty one when the user has none.
func (r *postgresRepo) Get(ctx context.Context, userID string) (domain.Cart, error) {
	const q = `SELECT items FROM carts WHERE user_id = $1`

	var raw []byte
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewCart(), nil
		}
		r.logger.Printf("cart repo: get user=%s error=%v", userID, err)
		return domain.Cart{}, err
	}

	cart := domain.NewCart()
	if err := json.Unmarshal(raw, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart for %s: %w", userID, err)
	}
	return cart, nil
}

// Save replaces the whole cart document.
func (r *postgresRepo) Save(ctx context.Context, userID string, cart domain.Cart) error {
	const q = `
INSERT INTO carts (user_id, items, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items, updated_at = now()
`
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if _, err := r.pool.Exec(ctx, q, userID, raw); err != nil {
		r.logger.Printf("cart repo: save user=%s error=%v", userID, err)
		return err
	}
	r.logger.Printf("cart repo: saved user=%s units=%d", userID, cart.TotalCount())
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
		r.logger.Printf("cart repo: delete user=%s error=%v", userID, err)
		return err
	}
	return nil
}
