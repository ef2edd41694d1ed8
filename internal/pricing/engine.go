// Package pricing turns a subtotal into delivery fee, tax, discount and
// grand total. Every function is deterministic and side-effect free.
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Tier grants Amount off when the subtotal is strictly above Above.
type Tier struct {
	Above  decimal.Decimal
	Amount decimal.Decimal
}

type Config struct {
	DeliveryFee           decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
	TaxRate               decimal.Decimal
	Tiers                 []Tier
}

// DefaultConfig mirrors the storefront's published offers.
func DefaultConfig() Config {
	return Config{
		DeliveryFee:           decimal.NewFromInt(30),
		FreeDeliveryThreshold: decimal.NewFromInt(200),
		TaxRate:               decimal.RequireFromString("0.05"),
		Tiers: []Tier{
			{Above: decimal.NewFromInt(2000), Amount: decimal.NewFromInt(100)},
			{Above: decimal.NewFromInt(1500), Amount: decimal.NewFromInt(50)},
			{Above: decimal.NewFromInt(1000), Amount: decimal.NewFromInt(30)},
		},
	}
}

// Breakdown is a priced view of one subtotal.
type Breakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Tax         decimal.Decimal `json:"tax"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine {
	tiers := make([]Tier, len(cfg.Tiers))
	copy(tiers, cfg.Tiers)
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].Above.GreaterThan(tiers[j].Above)
	})
	cfg.Tiers = tiers
	return &Engine{cfg: cfg}
}

// DeliveryFee charges the flat fee below the free-delivery threshold.
// A subtotal equal to the threshold ships free.
func (e *Engine) DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.LessThan(e.cfg.FreeDeliveryThreshold) {
		return e.cfg.DeliveryFee
	}
	return decimal.Zero
}

// Discount returns the single highest tier strictly exceeded.
func (e *Engine) Discount(subtotal decimal.Decimal) decimal.Decimal {
	for _, tier := range e.cfg.Tiers {
		if subtotal.GreaterThan(tier.Above) {
			return tier.Amount
		}
	}
	return decimal.Zero
}

func (e *Engine) Tax(subtotal, deliveryFee decimal.Decimal) decimal.Decimal {
	return Round2(subtotal.Add(deliveryFee).Mul(e.cfg.TaxRate))
}

// Total is subtotal + fee + tax - discount, and zero for an empty subtotal.
func (e *Engine) Total(subtotal, deliveryFee, tax, discount decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() {
		return decimal.Zero
	}
	return subtotal.Add(deliveryFee).Add(tax).Sub(discount)
}

// Quote applies every rule to subtotal.
func (e *Engine) Quote(subtotal decimal.Decimal) Breakdown {
	fee := e.DeliveryFee(subtotal)
	tax := e.Tax(subtotal, fee)
	discount := e.Discount(subtotal)
	return Breakdown{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Discount:    discount,
		Total:       e.Total(subtotal, fee, tax, discount),
	}
}

// Round2 rounds half away from zero to two decimal places, which is
// round-half-up for the non-negative amounts priced here.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
