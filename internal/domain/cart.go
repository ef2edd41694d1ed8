package domain

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// Cart maps product id -> variant label -> quantity for a single customer.
// Every stored quantity is positive and every product has at least one
// variant; the mutators below are the only way entries change.
type Cart struct {
	items map[string]map[string]int
}

// LineItem is a cart entry resolved against a catalog snapshot.
type LineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Variant   string          `json:"size"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Total is UnitPrice * Quantity.
func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func NewCart() Cart {
	return Cart{items: make(map[string]map[string]int)}
}

// SetQuantity stores qty as the absolute quantity of the variant. A
// non-positive qty removes the variant, and the product with it once no
// variants remain.
func (c *Cart) SetQuantity(productID, variant string, qty int) {
	if qty <= 0 {
		variants, ok := c.items[productID]
		if !ok {
			return
		}
		delete(variants, variant)
		if len(variants) == 0 {
			delete(c.items, productID)
		}
		return
	}
	if c.items == nil {
		c.items = make(map[string]map[string]int)
	}
	variants, ok := c.items[productID]
	if !ok {
		variants = make(map[string]int)
		c.items[productID] = variants
	}
	variants[variant] = qty
}

// AddQuantity adds qty to the current quantity (0 when absent).
func (c *Cart) AddQuantity(productID, variant string, qty int) {
	c.SetQuantity(productID, variant, c.Quantity(productID, variant)+qty)
}

func (c Cart) Quantity(productID, variant string) int {
	return c.items[productID][variant]
}

func (c Cart) TotalCount() int {
	total := 0
	for _, variants := range c.items {
		for _, qty := range variants {
			total += qty
		}
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// ProductIDs lists the products in the cart, sorted.
func (c Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Each visits entries ordered by product id, then variant label.
func (c Cart) Each(fn func(productID, variant string, qty int)) {
	for _, id := range c.ProductIDs() {
		variants := c.items[id]
		labels := make([]string, 0, len(variants))
		for label := range variants {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			fn(id, label, variants[label])
		}
	}
}

// ResolveAmount prices the cart against the live catalog. Products the
// catalog does not know contribute nothing.
func (c Cart) ResolveAmount(catalog ProductLookup) decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines(catalog) {
		total = total.Add(line.Total())
	}
	return total
}

// Lines resolves each entry to a priced line item, skipping products
// missing from the catalog.
func (c Cart) Lines(catalog ProductLookup) []LineItem {
	var lines []LineItem
	c.Each(func(productID, variant string, qty int) {
		product, ok := catalog.Lookup(productID)
		if !ok {
			return
		}
		lines = append(lines, LineItem{
			ProductID: productID,
			Name:      product.Name,
			Variant:   variant,
			UnitPrice: product.UnitPrice(variant),
			Quantity:  qty,
		})
	})
	return lines
}

func (c Cart) Clone() Cart {
	out := NewCart()
	for id, variants := range c.items {
		copied := make(map[string]int, len(variants))
		for label, qty := range variants {
			copied[label] = qty
		}
		out.items[id] = copied
	}
	return out
}

// MarshalJSON renders the persisted document {productId: {variant: qty}}.
func (c Cart) MarshalJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.items)
}

// UnmarshalJSON reads the persisted document, dropping non-positive entries.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = NewCart()
	for id, variants := range raw {
		for label, qty := range variants {
			c.SetQuantity(id, label, qty)
		}
	}
	return nil
}
