package serialunit

import (
	"errors"
	"time"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/pkg/errs"
)

var (
	// ErrSerialUnitIsNotConstructed is returned when a SerialUnit instance
	// was not created through NewSerialUnit or RestoreSerialUnit.
	ErrSerialUnitIsNotConstructed = errors.New("SerialUnit must be created via NewSerialUnit or RestoreSerialUnit")

	// ErrProductMismatch is returned when a unit is offered to an order
	// item of a different product.
	ErrProductMismatch = errors.New("serial unit belongs to a different product")
)

// SerialUnit is the aggregate root for one physically identifiable,
// uniquely serialized product instance. It owns the unit's lifecycle from
// warehouse intake through reservation against an order item to final
// handover to a dealer.
//
// SerialUnit maintains these invariants:
//   - serialNumber and productID are immutable after intake
//   - orderItemID is non-nil iff state is AssignedToOrderItem or
//     AllocatedToDealer, and names at most one owning order item
//   - dealerAccountID is non-nil iff state is AllocatedToDealer, and is
//     never cleared afterwards
//   - state transitions follow the State machine; terminal states admit none
//
// Every successful transition is recorded as a TransitionEvent, retrievable
// via PendingEvents for post-commit publication.
type SerialUnit struct {
	// id is the unique identifier of the unit
	id kernel.UUID

	// serialNumber is the globally unique serial printed on the unit
	serialNumber string

	// productID is the owning product
	productID kernel.UUID

	// state is the current lifecycle state
	state State

	// orderItemID is the owning order item while assigned or allocated
	orderItemID *kernel.UUID

	// dealerAccountID is set once custody moved to a dealer
	dealerAccountID *kernel.UUID

	// updatedAt is bumped on every transition
	updatedAt time.Time

	// events accumulates transitions applied to this instance
	events []TransitionEvent

	// isConstructed ensures the unit was created via a constructor
	isConstructed bool
}

// NewSerialUnit registers a newly received unit in InStock state.
// This is the intake entry point: the id must be a valid UUID, the serial
// number must not be empty and the product must be named.
func NewSerialUnit(id kernel.UUID, serialNumber string, productID kernel.UUID) (*SerialUnit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if serialNumber == "" {
		return nil, errs.NewValueIsRequiredError("serialNumber")
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	return &SerialUnit{
		id:            id,
		serialNumber:  serialNumber,
		productID:     productID,
		state:         InStock,
		updatedAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreSerialUnit reconstructs a unit from persistence.
// It re-validates the cross-field invariants so corrupt rows are rejected at
// the storage boundary instead of leaking into the engine.
func RestoreSerialUnit(
	id kernel.UUID,
	serialNumber string,
	productID kernel.UUID,
	state State,
	orderItemID *kernel.UUID,
	dealerAccountID *kernel.UUID,
	updatedAt time.Time,
) (*SerialUnit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if serialNumber == "" {
		return nil, errs.NewValueIsRequiredError("serialNumber")
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if err := validateOwnership(state, orderItemID, dealerAccountID); err != nil {
		return nil, err
	}

	return &SerialUnit{
		id:              id,
		serialNumber:    serialNumber,
		productID:       productID,
		state:           state,
		orderItemID:     orderItemID,
		dealerAccountID: dealerAccountID,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}, nil
}

// validateOwnership enforces the consistency between state and the
// ownership references.
//
// Rules:
//   - AssignedToOrderItem and AllocatedToDealer require an order item
//   - every other state forbids one
//   - AllocatedToDealer requires a dealer account; every other state forbids one
func validateOwnership(state State, orderItemID, dealerAccountID *kernel.UUID) error {
	ownsOrderItem := state == AssignedToOrderItem || state == AllocatedToDealer
	if ownsOrderItem && orderItemID == nil {
		return errs.NewValueIsRequiredError("orderItemId")
	}
	if !ownsOrderItem && orderItemID != nil {
		return errs.NewValueIsInvalidError("orderItemId must be empty outside assignment")
	}

	if state == AllocatedToDealer && dealerAccountID == nil {
		return errs.NewValueIsRequiredError("dealerAccountId")
	}
	if state != AllocatedToDealer && dealerAccountID != nil {
		return errs.NewValueIsInvalidError("dealerAccountId must be empty before allocation")
	}

	return nil
}

// Validate ensures the SerialUnit instance was properly constructed.
// Returns ErrSerialUnitIsNotConstructed otherwise.
func (s *SerialUnit) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSerialUnitIsNotConstructed
	}
	return nil
}

// IsEqual compares two units by their unique identifiers.
func (s *SerialUnit) IsEqual(other *SerialUnit) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the unit's unique identifier.
func (s *SerialUnit) ID() kernel.UUID {
	return s.id
}

// SerialNumber returns the unit's serial number.
func (s *SerialUnit) SerialNumber() string {
	return s.serialNumber
}

// ProductID returns the owning product's identifier.
func (s *SerialUnit) ProductID() kernel.UUID {
	return s.productID
}

// State returns the current lifecycle state.
func (s *SerialUnit) State() State {
	return s.state
}

// OrderItemID returns the owning order item's identifier.
// Returns nil while the unit is not assigned or allocated.
func (s *SerialUnit) OrderItemID() *kernel.UUID {
	return s.orderItemID
}

// DealerAccountID returns the dealer account holding custody of the unit.
// Returns nil before allocation.
func (s *SerialUnit) DealerAccountID() *kernel.UUID {
	return s.dealerAccountID
}

// UpdatedAt returns the time of the last applied transition.
func (s *SerialUnit) UpdatedAt() time.Time {
	return s.updatedAt
}

// BelongsToProduct reports whether the unit belongs to the given product.
func (s *SerialUnit) BelongsToProduct(productID kernel.UUID) bool {
	return s.productID.IsEqual(productID)
}

// AssignToOrderItem reserves the unit against an order item.
//
// Requires the unit to be InStock; the quantity invariant of the order item
// is enforced by the transition engine before this is called. Returns
// ErrNotInStock from any other state, so re-issuing an already-applied
// assignment is rejected rather than silently re-applied.
func (s *SerialUnit) AssignToOrderItem(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}

	newState, err := s.state.Assign()
	if err != nil {
		return err
	}

	from := s.state
	s.state = newState
	s.orderItemID = &orderItemID
	s.touch(from)
	return nil
}

// Unassign releases the unit back into stock.
//
// Requires the unit to be AssignedToOrderItem and owned by the given order
// item. Returns ErrNotAssigned otherwise; an allocated unit fails with
// ErrAllocationIsTerminal.
func (s *SerialUnit) Unassign(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}
	if s.state == AssignedToOrderItem && (s.orderItemID == nil || !s.orderItemID.IsEqual(orderItemID)) {
		return ErrNotAssigned
	}

	newState, err := s.state.Unassign()
	if err != nil {
		return err
	}

	from := s.state
	s.state = newState
	s.orderItemID = nil
	s.touch(from)
	return nil
}

// AllocateToDealer transfers custody of the unit to a dealer account.
//
// Requires the unit to be AssignedToOrderItem. The order item reference is
// kept so the allocation remains attributable to its order line. This
// transition is terminal: no engine operation leads out of it.
func (s *SerialUnit) AllocateToDealer(dealerAccountID kernel.UUID) error {
	if err := dealerAccountID.Validate(); err != nil {
		return err
	}

	newState, err := s.state.Allocate()
	if err != nil {
		return err
	}

	from := s.state
	s.state = newState
	s.dealerAccountID = &dealerAccountID
	s.touch(from)
	return nil
}

// WriteOff removes the unit from sellable inventory, marking it Sold or
// Damaged. Requires the unit to be InStock. Terminal.
func (s *SerialUnit) WriteOff(target State) error {
	newState, err := s.state.WriteOff(target)
	if err != nil {
		return err
	}

	from := s.state
	s.state = newState
	s.touch(from)
	return nil
}

// touch bumps updatedAt and records the transition that just happened.
func (s *SerialUnit) touch(from State) {
	s.updatedAt = time.Now().UTC()
	s.events = append(s.events, TransitionEvent{
		UnitID:          s.id,
		SerialNumber:    s.serialNumber,
		From:            from,
		To:              s.state,
		OrderItemID:     s.orderItemID,
		DealerAccountID: s.dealerAccountID,
		OccurredAt:      s.updatedAt,
	})
}

// PendingEvents returns the transitions applied to this instance since it
// was loaded. The engine publishes them after a successful commit.
func (s *SerialUnit) PendingEvents() []TransitionEvent {
	return s.events
}

// ClearPendingEvents discards recorded transitions, typically after they
// have been published.
func (s *SerialUnit) ClearPendingEvents() {
	s.events = nil
}
