package serialunit

import (
	"time"

	"allocation/internal/core/domain/model/kernel"
)

// TransitionEvent records one committed state change of a serial unit.
// Events are the only way state changes become observable outside the
// store: the status projector and the audit trail both consume them.
type TransitionEvent struct {
	// UnitID identifies the unit that transitioned.
	UnitID kernel.UUID

	// SerialNumber duplicates the unit's serial for audit readability.
	SerialNumber string

	// From is the state before the transition.
	From State

	// To is the state after the transition.
	To State

	// OrderItemID is the owning order item after the transition, if any.
	OrderItemID *kernel.UUID

	// DealerAccountID is the dealer holding custody after the transition,
	// if any.
	DealerAccountID *kernel.UUID

	// OccurredAt is when the transition was applied.
	OccurredAt time.Time
}
