package domain

import (
	"fmt"
	"strings"
)

type OrderStatus string

const (
	StatusPlaced         OrderStatus = "Order Placed"
	StatusPacking        OrderStatus = "Packing"
	StatusShipped        OrderStatus = "Shipped"
	StatusOutForDelivery OrderStatus = "Out for delivery"
	StatusDelivered      OrderStatus = "Delivered"
)

var statusOrder = []OrderStatus{
	StatusPlaced,
	StatusPacking,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

// Statuses lists the fulfillment states in their intended order.
func Statuses() []OrderStatus {
	out := make([]OrderStatus, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// ParseStatus matches one of the five states, ignoring case and
// surrounding whitespace.
func ParseStatus(s string) (OrderStatus, error) {
	trimmed := strings.TrimSpace(s)
	for _, st := range statusOrder {
		if strings.EqualFold(trimmed, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Rank is the position in the fulfillment order, or -1 for unknown values.
func (s OrderStatus) Rank() int {
	for i, st := range statusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered
}

// TransitionPolicy decides whether an order may move between states.
type TransitionPolicy interface {
	Name() string
	Allow(from, to OrderStatus) error
}

// PermissivePolicy lets an administrator set any of the five states from
// any state. This is the storefront's historical contract.
type PermissivePolicy struct{}

func (PermissivePolicy) Name() string { return "permissive" }

func (PermissivePolicy) Allow(_, to OrderStatus) error {
	if to.Rank() < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(to))
	}
	return nil
}

// ForwardPolicy only permits moves further along the fulfillment order.
// Delivered is terminal.
type ForwardPolicy struct{}

func (ForwardPolicy) Name() string { return "forward" }

func (ForwardPolicy) Allow(from, to OrderStatus) error {
	if to.Rank() < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, string(to))
	}
	if from.Terminal() {
		return fmt.Errorf("%w: %s is terminal", ErrIllegalTransition, from)
	}
	if to.Rank() <= from.Rank() {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}

// PolicyByName maps a configuration value to a policy. Empty means permissive.
func PolicyByName(name string) (TransitionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "permissive":
		return PermissivePolicy{}, nil
	case "forward":
		return ForwardPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown status policy %q", name)
	}
}

// Transition checks a move from -> to. Moving to the current state is a
// successful no-op under every policy.
func Transition(policy TransitionPolicy, from, to OrderStatus) (changed bool, err error) {
	if from == to {
		return false, nil
	}
	if err := policy.Allow(from, to); err != nil {
		return false, err
	}
	return true, nil
}
