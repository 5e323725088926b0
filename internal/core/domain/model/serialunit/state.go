package serialunit

import (
	"errors"
	"fmt"

	"allocation/internal/pkg/errs"
)

// Transition errors returned by the state machine. They form the allocation
// error taxonomy surfaced to callers of the transition engine.
var (
	// ErrNotInStock is returned when an operation requires a unit in
	// IN_STOCK (assignment, write-off) but the unit is in another state.
	// Re-issuing an already-applied assignment lands here as well, which is
	// what makes assignment rejection idempotent.
	ErrNotInStock = errors.New("serial unit is not in stock")

	// ErrNotAssigned is returned when an operation requires a unit in
	// ASSIGNED_TO_ORDER_ITEM (unassign, dealer allocation) but the unit is
	// in another state.
	ErrNotAssigned = errors.New("serial unit is not assigned to an order item")

	// ErrAllocationIsTerminal is returned for any attempted transition out
	// of ALLOCATED_TO_DEALER. Once custody moved to a dealer the engine
	// exposes no way back. Wraps ErrNotAssigned: an allocated unit is no
	// longer assigned, so errors.Is matches both sentinels.
	ErrAllocationIsTerminal = fmt.Errorf("%w: allocation to a dealer is terminal", ErrNotAssigned)
)

// State represents the lifecycle state of a serialized unit.
// It implements a state machine with defined transitions:
//
//	IN_STOCK ──┬──> ASSIGNED_TO_ORDER_ITEM ──> ALLOCATED_TO_DEALER
//	           │              │
//	           │<─────────────┘ (unassign)
//	           ├──> DAMAGED
//	           └──> SOLD
//
// ALLOCATED_TO_DEALER, DAMAGED and SOLD are terminal; no transition leads
// out of them.
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// InStock is the initial state of a received unit sitting in the
	// warehouse, eligible for assignment or write-off.
	InStock

	// AssignedToOrderItem means the unit is reserved against a specific
	// order item but custody has not yet moved to a dealer.
	AssignedToOrderItem

	// AllocatedToDealer means custody of the unit was transferred to a
	// dealer account. Terminal.
	AllocatedToDealer

	// Sold means the unit left inventory through a direct sale. Terminal.
	Sold

	// Damaged means the unit was written off as damaged. Terminal.
	Damaged
)

// stateStrings maps every State to its wire representation. The names match
// the vocabulary the admin console exchanges with the engine.
func stateStrings() map[State]string {
	return map[State]string{
		Unknown:             "UNKNOWN",
		InStock:             "IN_STOCK",
		AssignedToOrderItem: "ASSIGNED_TO_ORDER_ITEM",
		AllocatedToDealer:   "ALLOCATED_TO_DEALER",
		Sold:                "SOLD",
		Damaged:             "DAMAGED",
	}
}

// validStateStrings maps only valid States, excluding Unknown.
func validStateStrings() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		InStock:             "IN_STOCK",
		AssignedToOrderItem: "ASSIGNED_TO_ORDER_ITEM",
		AllocatedToDealer:   "ALLOCATED_TO_DEALER",
		Sold:                "SOLD",
		Damaged:             "DAMAGED",
	}
}

// StateFromString parses a wire representation ("IN_STOCK", ...) into a
// State. Used when reading state filters from API requests.
func StateFromString(s string) (State, error) {
	for state, str := range validStateStrings() {
		if str == s {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%q is not a valid state", s))
}

// Validate checks if the State value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s State) Validate() error {
	if _, ok := validStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the wire name of the state, or "UNKNOWN" for invalid values.
// Implements fmt.Stringer.
func (s State) String() string {
	if str, ok := stateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leads out of this state.
func (s State) IsTerminal() bool {
	return s == AllocatedToDealer || s == Sold || s == Damaged
}

// Assign transitions the state to AssignedToOrderItem.
//
// Valid transition: InStock -> AssignedToOrderItem.
// Returns ErrAllocationIsTerminal from AllocatedToDealer and ErrNotInStock
// from every other state, including a repeated assignment.
func (s State) Assign() (State, error) {
	if s == AllocatedToDealer {
		return 0, ErrAllocationIsTerminal
	}
	if s != InStock {
		return 0, ErrNotInStock
	}
	return AssignedToOrderItem, nil
}

// Unassign transitions the state back to InStock.
//
// Valid transition: AssignedToOrderItem -> InStock.
// Returns ErrAllocationIsTerminal from AllocatedToDealer and ErrNotAssigned
// from every other state.
func (s State) Unassign() (State, error) {
	if s == AllocatedToDealer {
		return 0, ErrAllocationIsTerminal
	}
	if s != AssignedToOrderItem {
		return 0, ErrNotAssigned
	}
	return InStock, nil
}

// Allocate transitions the state to AllocatedToDealer.
//
// Valid transition: AssignedToOrderItem -> AllocatedToDealer. The resulting
// state is terminal. Returns ErrAllocationIsTerminal when already allocated
// and ErrNotAssigned from every other state.
func (s State) Allocate() (State, error) {
	if s == AllocatedToDealer {
		return 0, ErrAllocationIsTerminal
	}
	if s != AssignedToOrderItem {
		return 0, ErrNotAssigned
	}
	return AllocatedToDealer, nil
}

// WriteOff transitions the state to the requested terminal write-off state
// (Sold or Damaged).
//
// Valid transitions: InStock -> Sold, InStock -> Damaged.
// Returns ErrNotInStock from every other state and an invalid-value error
// when target is not a write-off state.
func (s State) WriteOff(target State) (State, error) {
	if target != Sold && target != Damaged {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%s is not a write-off state", target.String()),
		)
	}
	if s != InStock {
		return 0, ErrNotInStock
	}
	return target, nil
}
