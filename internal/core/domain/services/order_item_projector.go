package services

import (
	"fmt"

	"allocation/internal/core/domain/model/orderitem"
)

// OrderItemProjector is a domain service deriving an order item's
// fulfillment status from its serial unit counts. The status is recomputed
// synchronously after every transition batch touching the item and is
// never stored as an independently-mutable field, so it cannot drift from
// the counts it derives from.
//
// Projection rule:
//   - Completed: allocatedCount == requiredQuantity (dealer allocation is
//     the fulfillment signal; full assignment alone is not completion)
//   - Pending: no unit assigned or allocated
//   - Partial: everything in between
type OrderItemProjector struct{}

// NewOrderItemProjector creates a new OrderItemProjector instance.
func NewOrderItemProjector() OrderItemProjector {
	return OrderItemProjector{}
}

// Project derives the fulfillment status of an order item requiring
// requiredQuantity units, of which assignedCount are in
// ASSIGNED_TO_ORDER_ITEM and allocatedCount in ALLOCATED_TO_DEALER.
//
// The combined count must never exceed requiredQuantity; the engine
// enforces that invariant before commit, so a violation here indicates
// corrupted state and is reported as an error rather than mapped to a
// status.
func (p OrderItemProjector) Project(requiredQuantity, assignedCount, allocatedCount int) (orderitem.Status, error) {
	if requiredQuantity <= 0 {
		return orderitem.Unknown, fmt.Errorf("required quantity must be positive, got %d", requiredQuantity)
	}
	if assignedCount < 0 || allocatedCount < 0 {
		return orderitem.Unknown, fmt.Errorf("counts must not be negative, got assigned=%d allocated=%d", assignedCount, allocatedCount)
	}

	reserved := assignedCount + allocatedCount
	if reserved > requiredQuantity {
		return orderitem.Unknown, fmt.Errorf("reserved count %d exceeds required quantity %d", reserved, requiredQuantity)
	}

	switch {
	case allocatedCount == requiredQuantity:
		return orderitem.Completed, nil
	case reserved == 0:
		return orderitem.Pending, nil
	default:
		return orderitem.Partial, nil
	}
}
