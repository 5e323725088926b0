package services

import (
	"errors"
	"fmt"
)

// ErrQuantityExceeded is returned when a proposed batch of assignments or
// unassignments would push an order item's reserved-unit count above its
// required quantity or below zero.
var ErrQuantityExceeded = errors.New("order item quantity exceeded")

// QuantityChecker is a domain service validating a proposed change to an
// order item's serial reservations against its required quantity.
//
// The check is advisory pre-validation: the checker works on a
// point-in-time count and the authoritative guarantee is still enforced by
// the per-unit compare-and-set writes in the store. A race between the
// check and the commit degrades to a rejected or retried transition, never
// to silent overbooking.
//
// Example usage:
//
//	checker := NewQuantityChecker()
//	// order item needs 5 units, 3 are already reserved, batch adds 2
//	err := checker.Validate(5, 3, +2)
//	if errors.Is(err, ErrQuantityExceeded) {
//	    // reject the batch before touching any unit
//	}
type QuantityChecker struct{}

// NewQuantityChecker creates a new QuantityChecker instance.
func NewQuantityChecker() QuantityChecker {
	return QuantityChecker{}
}

// Validate checks whether applying delta (+N for assign, -N for unassign)
// to the current reserved count keeps the order item within bounds.
//
// Returns ErrQuantityExceeded (wrapped with the offending numbers) when the
// post-operation count would exceed requiredQuantity or underflow below
// zero. requiredQuantity must be positive and currentCount non-negative;
// violations of those indicate a caller bug and are reported as plain
// errors.
func (c QuantityChecker) Validate(requiredQuantity, currentCount, delta int) error {
	if requiredQuantity <= 0 {
		return fmt.Errorf("required quantity must be positive, got %d", requiredQuantity)
	}
	if currentCount < 0 {
		return fmt.Errorf("current count must not be negative, got %d", currentCount)
	}

	next := currentCount + delta
	if next > requiredQuantity {
		return fmt.Errorf("%w: %d of %d reserved, batch of %+d rejected",
			ErrQuantityExceeded, currentCount, requiredQuantity, delta)
	}
	if next < 0 {
		return fmt.Errorf("%w: only %d reserved, cannot release %d",
			ErrQuantityExceeded, currentCount, -delta)
	}

	return nil
}
