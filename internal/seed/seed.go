package seed

import (
	"context"
	"fmt"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

func cents(v int64) *int64 { return &v }

// Products is the demo catalog. Fixed ids keep Apply idempotent.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:          "demo-linen-shirt",
			Name:        "Linen Shirt",
			Description: "Breathable linen shirt for warm days",
			Category:    "Men",
			SubCategory: "Topwear",
			PriceCents:  4999,
			Variants:    []domain.Variant{{Label: "S"}, {Label: "M"}, {Label: "L"}, {Label: "XL", PriceCents: cents(5499)}},
			Bestseller:  true,
		},
		{
			ID:          "demo-denim-jacket",
			Name:        "Denim Jacket",
			Description: "Classic washed denim jacket",
			Category:    "Women",
			SubCategory: "Winterwear",
			PriceCents:  12900,
			Variants:    []domain.Variant{{Label: "S"}, {Label: "M"}, {Label: "L"}},
		},
		{
			ID:          "demo-basmati-rice",
			Name:        "Basmati Rice",
			Description: "Aged long-grain rice",
			Category:    "Grocery",
			PriceCents:  6000,
			Variants:    []domain.Variant{{Label: "1kg"}, {Label: "2kg", PriceCents: cents(11000)}, {Label: "5kg", PriceCents: cents(26000)}},
		},
		{
			ID:          "demo-cotton-socks",
			Name:        "Cotton Socks",
			Description: "Pack of three",
			Category:    "Kids",
			SubCategory: "Bottomwear",
			PriceCents:  899,
			Variants:    []domain.Variant{{Label: "OS"}},
		},
	}
}

// Apply upserts the demo catalog for manual testing.
func Apply(ctx context.Context, repo ProductWriter) (int, error) {
	products := Products()
	for _, p := range products {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return 0, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	return len(products), nil
}
