package poll

import (
	"storefront/internal/domain"
)

// StatusChange is an order whose status differs from the previous listing.
type StatusChange struct {
	OrderID   string
	NumericID int
	From      domain.OrderStatus
	To        domain.OrderStatus
}

// Changes is the difference between two consecutive listings.
type Changes struct {
	New     []domain.Order
	Updated []StatusChange
}

func (c Changes) Empty() bool {
	return len(c.New) == 0 && len(c.Updated) == 0
}

// OrderWatcher diffs order listings. The first listing it sees is the
// baseline and reports no changes.
type OrderWatcher struct {
	seen   map[string]domain.OrderStatus
	primed bool
}

func NewOrderWatcher() *OrderWatcher {
	return &OrderWatcher{seen: make(map[string]domain.OrderStatus)}
}

// Observe records orders and returns what changed since the last call.
// Orders missing from a listing are forgotten.
func (w *OrderWatcher) Observe(orders []domain.Order) Changes {
	var changes Changes
	next := make(map[string]domain.OrderStatus, len(orders))
	for _, o := range orders {
		next[o.ID] = o.Status
		if !w.primed {
			continue
		}
		prev, ok := w.seen[o.ID]
		switch {
		case !ok:
			changes.New = append(changes.New, o)
		case prev != o.Status:
			changes.Updated = append(changes.Updated, StatusChange{
				OrderID:   o.ID,
				NumericID: o.NumericID,
				From:      prev,
				To:        o.Status,
			})
		}
	}
	w.seen = next
	w.primed = true
	return changes
}
