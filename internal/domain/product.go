package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant is a purchasable configuration of a product (size, weight, ...).
// A variant without its own price sells at the product base price.
type Variant struct {
	Label      string `json:"label"`
	PriceCents *int64 `json:"priceCents,omitempty"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	SubCategory string    `json:"subCategory,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Variants    []Variant `json:"variants"`
	Images      []string  `json:"images,omitempty"`
	Bestseller  bool      `json:"bestseller"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UnitPrice returns the price of one unit of the given variant.
func (p Product) UnitPrice(variant string) decimal.Decimal {
	for _, v := range p.Variants {
		if v.Label == variant && v.PriceCents != nil {
			return Cents(*v.PriceCents)
		}
	}
	return Cents(p.PriceCents)
}
