package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks a request with absent or malformed identifiers.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidStatus is returned for a status outside the five fulfillment states.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrIllegalTransition is returned when a guarded policy refuses a status change.
	ErrIllegalTransition = errors.New("illegal status transition")
)
