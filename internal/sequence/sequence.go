// Package sequence assigns display numbers to order listings.
package sequence

import (
	"sort"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

// Number sorts a copy of orders by creation time, sets NumericID to the
// 1-based position, and returns the list newest first. Orders created at
// the same instant are ordered by their persisted Seq, then by ID.
func Number(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Seq != b.Seq {
			return a.Seq < b.Seq
		}
		return a.ID < b.ID
	})
	for i := range out {
		out[i].NumericID = i + 1
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// DateLayout renders order dates the way listings display them, for
// example "05 Mar 2024, 02:30 pm".
const DateLayout = "02 Jan 2006, 03:04 pm"

// Find keeps numbered orders whose numeric id, display date or any item name
// contains query, ignoring case. Dates are rendered in UTC.
func Find(orders []domain.Order, query string) []domain.Order {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return orders
	}
	var out []domain.Order
	for _, o := range orders {
		if matches(o, query) {
			out = append(out, o)
		}
	}
	return out
}

func matches(o domain.Order, query string) bool {
	if strings.Contains(strconv.Itoa(o.NumericID), query) {
		return true
	}
	if strings.Contains(strings.ToLower(o.Date.UTC().Format(DateLayout)), query) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			return true
		}
	}
	return false
}
