package queries

import (
	"errors"
	"time"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/pkg/guard"
)

var ErrGetAllocatedSerialsQueryIsNotConstructed = errors.New(
	"GetAllocatedSerialsQuery must be created via NewGetAllocatedSerialsQuery constructor",
)

// GetAllocatedSerialsQuery retrieves the units of one order item whose
// custody already moved to a dealer, together with the receiving dealer
// account.
type GetAllocatedSerialsQuery struct {
	orderItemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAllocatedSerialsQuery creates a query for an order item's
// allocated units. Validates that the order item ID is valid.
func NewGetAllocatedSerialsQuery(orderItemID kernel.UUID) (GetAllocatedSerialsQuery, error) {
	if err := orderItemID.Validate(); err != nil {
		return GetAllocatedSerialsQuery{}, err
	}

	return GetAllocatedSerialsQuery{
		orderItemID: orderItemID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllocatedSerialsQueryIsNotConstructed if validation fails.
func (q GetAllocatedSerialsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllocatedSerialsQueryIsNotConstructed)
}

// OrderItemID returns the order item whose allocated units are requested.
func (q GetAllocatedSerialsQuery) OrderItemID() kernel.UUID {
	return q.orderItemID
}

// GetAllocatedSerialsQueryResponse represents one unit handed to a dealer.
// AllocatedAt is the time of the allocating transition.
type GetAllocatedSerialsQueryResponse struct {
	ID              kernel.UUID
	SerialNumber    string
	DealerAccountID kernel.UUID
	AllocatedAt     time.Time
}
