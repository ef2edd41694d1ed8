package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is the delivery address captured at checkout.
type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// OrderItem is a line frozen at checkout; its price never follows the catalog.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

func (i OrderItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is created from resolved cart lines. Status is the only field
// changed after creation; Items are never rewritten.
type Order struct {
	ID            string          `json:"id"`
	Seq           int64           `json:"seq"`
	NumericID     int             `json:"numericId,omitempty"`
	UserID        string          `json:"userId"`
	Items         []OrderItem     `json:"items"`
	Address       Address         `json:"address"`
	PaymentMethod string          `json:"paymentMethod"`
	Payment       bool            `json:"payment"`
	Status        OrderStatus     `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	DeliveryFee   decimal.Decimal `json:"deliveryCharge"`
	Discount      decimal.Decimal `json:"discount"`
	Date          time.Time       `json:"date"`
}

// FreezeItems copies resolved cart lines into order items.
func FreezeItems(lines []LineItem) []OrderItem {
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Size:      l.Variant,
			Price:     l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	return items
}

// Subtotal sums the frozen item prices.
func (o Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Total())
	}
	return total
}
