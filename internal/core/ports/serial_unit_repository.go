package ports

import (
	"context"
	"errors"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/serialunit"
)

// ErrConflict is returned by UpdateWithStateCheck when the stored state of
// a unit no longer matches the expected prior state, meaning another
// writer got there first. The failure is retryable: callers should
// re-fetch the current available/assigned lists and decide whether to
// retry, since the unit lists themselves may have changed.
var ErrConflict = errors.New("serial unit was modified concurrently")

// ErrDuplicateSerialNumber is returned by Add when the serial number is
// already registered. Serial numbers are globally unique across products.
var ErrDuplicateSerialNumber = errors.New("serial number is already registered")

// SerialUnitRepository defines the persistence contract for serial unit
// aggregates.
//
// UpdateWithStateCheck is the only write primitive for existing units: a
// compare-and-set that persists the aggregate only if the stored state
// still equals the expected prior state. All engine transitions go through
// it; no direct field mutation is permitted outside it.
type SerialUnitRepository interface {
	// Add persists a newly received unit. Fails when the serial number is
	// already registered.
	Add(ctx context.Context, aggregate *serialunit.SerialUnit) error

	// Get retrieves a unit by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*serialunit.SerialUnit, error)

	// GetByProduct retrieves all units of a product in the given state,
	// ordered by serial number.
	GetByProduct(ctx context.Context, productID kernel.UUID, state serialunit.State) ([]*serialunit.SerialUnit, error)

	// GetByOrderItem retrieves all units owned by an order item in any of
	// the given states. With no states given, all owned units are returned.
	GetByOrderItem(ctx context.Context, orderItemID kernel.UUID, states ...serialunit.State) ([]*serialunit.SerialUnit, error)

	// CountByOrderItem counts units owned by an order item in any of the
	// given states.
	CountByOrderItem(ctx context.Context, orderItemID kernel.UUID, states ...serialunit.State) (int, error)

	// UpdateWithStateCheck persists the aggregate's current fields if and
	// only if the stored row's state still equals expectedState.
	// Returns ErrConflict when the guard fails.
	UpdateWithStateCheck(ctx context.Context, aggregate *serialunit.SerialUnit, expectedState serialunit.State) error
}
