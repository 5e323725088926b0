// Package queries contains the read side of the allocation engine: direct
// database projections backing the admin console's picking screens. Query
// handlers bypass the aggregates and read the serial unit rows as they
// were committed, which is what keeps the lists consistent with the
// engine's compare-and-set writes.
package queries

import (
	"errors"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/serialunit"
	"allocation/internal/pkg/guard"
)

var ErrGetAvailableSerialsQueryIsNotConstructed = errors.New(
	"GetAvailableSerialsQuery must be created via NewGetAvailableSerialsQuery constructor",
)

// GetAvailableSerialsQuery retrieves the units of one product in a single
// lifecycle state, by default the in-stock pool an admin picks from when
// reserving units for an order item.
//
// Example:
//
//	query, err := NewGetAvailableSerialsQuery(productID)
//	if err != nil {
//	    return fmt.Errorf("invalid query: %w", err)
//	}
//
//	available, err := NewGetAvailableSerialsQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list available serials: %w", err)
//	}
type GetAvailableSerialsQuery struct {
	productID kernel.UUID
	state     serialunit.State

	guard guard.ConstructorGuard
}

// NewGetAvailableSerialsQuery creates a query for a product's in-stock
// units. Validates that the product ID is valid.
func NewGetAvailableSerialsQuery(productID kernel.UUID) (GetAvailableSerialsQuery, error) {
	return NewGetAvailableSerialsQueryWithState(productID, serialunit.InStock)
}

// NewGetAvailableSerialsQueryWithState creates a query for a product's
// units in an explicit lifecycle state. Validates both arguments.
func NewGetAvailableSerialsQueryWithState(
	productID kernel.UUID,
	state serialunit.State,
) (GetAvailableSerialsQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetAvailableSerialsQuery{}, err
	}
	if err := state.Validate(); err != nil {
		return GetAvailableSerialsQuery{}, err
	}

	return GetAvailableSerialsQuery{
		productID: productID,
		state:     state,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailableSerialsQueryIsNotConstructed if validation fails.
func (q GetAvailableSerialsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableSerialsQueryIsNotConstructed)
}

// ProductID returns the product whose available units are requested.
func (q GetAvailableSerialsQuery) ProductID() kernel.UUID {
	return q.productID
}

// State returns the lifecycle state the listing filters on.
func (q GetAvailableSerialsQuery) State() serialunit.State {
	return q.state
}

// GetAvailableSerialsQueryResponse represents one in-stock unit available
// for assignment.
type GetAvailableSerialsQueryResponse struct {
	ID           kernel.UUID
	SerialNumber string
}
