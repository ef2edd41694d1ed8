// Package invoice rebuilds a billing breakdown from an order's frozen items.
package invoice

import (
	"time"

	"storefront/internal/domain"
	"storefront/internal/pricing"

	"github.com/shopspring/decimal"
)

type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

type Invoice struct {
	OrderID       string             `json:"orderId"`
	NumericID     int                `json:"numericId,omitempty"`
	Date          time.Time          `json:"date"`
	Status        domain.OrderStatus `json:"status"`
	PaymentMethod string             `json:"paymentMethod"`
	Payment       bool               `json:"payment"`
	Address       domain.Address     `json:"address"`
	Lines         []Line             `json:"lines"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DeliveryFee   decimal.Decimal    `json:"deliveryFee"`
	Tax           decimal.Decimal    `json:"tax"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
}

type Calculator struct {
	engine *pricing.Engine
}

func New(engine *pricing.Engine) *Calculator {
	return &Calculator{engine: engine}
}

// Build prices the order from its frozen items. The discount is the one
// recorded at checkout and is never recomputed.
func (c *Calculator) Build(order domain.Order) Invoice {
	lines := make([]Line, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, Line{
			ProductID: item.ProductID,
			Name:      item.Name,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Total:     item.Total(),
		})
	}
	subtotal := order.Subtotal()
	fee := c.engine.DeliveryFee(subtotal)
	tax := c.engine.Tax(subtotal, fee)
	return Invoice{
		OrderID:       order.ID,
		NumericID:     order.NumericID,
		Date:          order.Date,
		Status:        order.Status,
		PaymentMethod: order.PaymentMethod,
		Payment:       order.Payment,
		Address:       order.Address,
		Lines:         lines,
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		Tax:           tax,
		Discount:      order.Discount,
		Total:         c.engine.Total(subtotal, fee, tax, order.Discount),
	}
}
