package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
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

const orderColumns = `id::text, seq, user_id, items, address, payment_method, payment, status, amount_cents, delivery_fee_cents, discount_cents, created_at`

// Create persists a new order. The database assigns seq; created_at is taken
// from order.Date when set.
func (r *postgresRepo) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	const q = `
INSERT INTO orders (id, user_id, items, address, payment_method, payment, status, amount_cents, delivery_fee_cents, discount_cents, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, now()))
RETURNING seq, created_at
`
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = domain.StatusPlaced
	}
	items := order.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}
	addressJSON, err := json.Marshal(order.Address)
	if err != nil {
		return nil, fmt.Errorf("encode order address: %w", err)
	}
	var createdAt *time.Time
	if !order.Date.IsZero() {
		createdAt = &order.Date
	}

	err = r.pool.QueryRow(ctx, q,
		order.ID,
		order.UserID,
		itemsJSON,
		addressJSON,
		order.PaymentMethod,
		order.Payment,
		string(order.Status),
		domain.ToCents(order.Amount),
		domain.ToCents(order.DeliveryFee),
		domain.ToCents(order.Discount),
		createdAt,
	).Scan(&order.Seq, &order.Date)
	if err != nil {
		r.logger.Printf("order repo: create user=%s error=%v", order.UserID, err)
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s seq=%d user=%s amount=%s", order.ID, order.Seq, order.UserID, order.Amount.StringFixed(2))
	return &order, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at, seq`
	return r.list(ctx, q)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at, seq`
	return r.list(ctx, q, userID)
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	return result, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("order repo: status id=%s -> %s", id, status)
	return nil
}

func (r *postgresRepo) MarkPaid(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET payment = TRUE WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("order repo: mark paid id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o                                    domain.Order
		status                               string
		itemsJSON, addressJSON               []byte
		amountCents, feeCents, discountCents int64
	)
	err := row.Scan(&o.ID, &o.Seq, &o.UserID, &itemsJSON, &addressJSON, &o.PaymentMethod, &o.Payment,
		&status, &amountCents, &feeCents, &discountCents, &o.Date)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items for order %s: %w", o.ID, err)
	}
	if len(addressJSON) > 0 {
		if err := json.Unmarshal(addressJSON, &o.Address); err != nil {
			return nil, fmt.Errorf("decode address for order %s: %w", o.ID, err)
		}
	}
	o.Status = domain.OrderStatus(status)
	o.Amount = domain.Cents(amountCents)
	o.DeliveryFee = domain.Cents(feeCents)
	o.Discount = domain.Cents(discountCents)
	return &o, nil
}
