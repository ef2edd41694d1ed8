package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

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

const productColumns = `id, name, COALESCE(description, ''), category, sub_category, price_cents, variants, images, bestseller, created_at`

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

// Upsert inserts or replaces a product by id. An empty id gets a new UUID.
func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, category, sub_category, price_cents, variants, images, bestseller)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    sub_category = EXCLUDED.sub_category,
    price_cents = EXCLUDED.price_cents,
    variants = EXCLUDED.variants,
    images = EXCLUDED.images,
    bestseller = EXCLUDED.bestseller
RETURNING created_at
`
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	variants := product.Variants
	if variants == nil {
		variants = []domain.Variant{}
	}
	variantsJSON, err := json.Marshal(variants)
	if err != nil {
		return nil, fmt.Errorf("encode variants: %w", err)
	}
	images := product.Images
	if images == nil {
		images = []string{}
	}

	err = r.pool.QueryRow(ctx, q,
		product.ID,
		product.Name,
		product.Description,
		product.Category,
		product.SubCategory,
		product.PriceCents,
		variantsJSON,
		images,
		product.Bestseller,
	).Scan(&product.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert id=%s error=%v", product.ID, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted id=%s name=%q", product.ID, product.Name)
	return &product, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p            domain.Product
		variantsJSON []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.SubCategory, &p.PriceCents, &variantsJSON, &p.Images, &p.Bestseller, &p.CreatedAt); err != nil {
		return nil, err
	}
	if len(variantsJSON) > 0 {
		if err := json.Unmarshal(variantsJSON, &p.Variants); err != nil {
			return nil, fmt.Errorf("decode variants for %s: %w", p.ID, err)
		}
	}
	return &p, nil
}
