package queries

import (
	"errors"
	"time"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/pkg/guard"
)

var ErrGetAssignedSerialsQueryIsNotConstructed = errors.New(
	"GetAssignedSerialsQuery must be created via NewGetAssignedSerialsQuery constructor",
)

// GetAssignedSerialsQuery retrieves the units currently reserved against
// one order item, the list an admin releases from or allocates to a
// dealer.
type GetAssignedSerialsQuery struct {
	orderItemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAssignedSerialsQuery creates a query for an order item's reserved
// units. Validates that the order item ID is valid.
func NewGetAssignedSerialsQuery(orderItemID kernel.UUID) (GetAssignedSerialsQuery, error) {
	if err := orderItemID.Validate(); err != nil {
		return GetAssignedSerialsQuery{}, err
	}

	return GetAssignedSerialsQuery{
		orderItemID: orderItemID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAssignedSerialsQueryIsNotConstructed if validation fails.
func (q GetAssignedSerialsQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignedSerialsQueryIsNotConstructed)
}

// OrderItemID returns the order item whose reserved units are requested.
func (q GetAssignedSerialsQuery) OrderItemID() kernel.UUID {
	return q.orderItemID
}

// GetAssignedSerialsQueryResponse represents one unit reserved against the
// order item. AssignedAt is the time of the assigning transition.
type GetAssignedSerialsQueryResponse struct {
	ID           kernel.UUID
	SerialNumber string
	AssignedAt   time.Time
}
