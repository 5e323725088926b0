package ports

import (
	"context"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/orderitem"
)

// OrderItemRepository defines the persistence contract for the engine's
// view of order items. The order domain owns the rows; the engine reads
// the required quantity for validation and writes back the projected
// fulfillment status.
type OrderItemRepository interface {
	// Get retrieves an order item reference by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*orderitem.OrderItem, error)

	// UpdateStatus records a freshly projected fulfillment status on the
	// order item, making it visible to the order domain.
	UpdateStatus(ctx context.Context, id kernel.UUID, status orderitem.Status) error
}
