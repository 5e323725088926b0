package commands

import (
	"errors"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/pkg/guard"
)

var ErrAssignSerialsCommandIsNotConstructed = errors.New(
	"AssignSerialsCommand must be created via NewAssignSerialsCommand constructor",
)

// AssignSerialsCommand represents a request to reserve specific units
// against an order item. The product ID names the product the caller
// believes the order item sells, letting the engine reject stale picks.
//
// Example:
//
//	cmd, err := NewAssignSerialsCommand(orderItemID, productID, serialIDs, "admin@corp")
//	if err != nil {
//	    return fmt.Errorf("invalid assignment data: %w", err)
//	}
//
//	handler := NewAssignSerialsCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to assign serials: %w", err)
//	}
type AssignSerialsCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	productID   kernel.UUID
	serialIDs   []kernel.UUID
	actor       string

	guard guard.ConstructorGuard
}

// NewAssignSerialsCommand creates a command to reserve units for an order
// item. Validates that both IDs are valid, the unit list is non-empty
// without duplicates, and the actor is named.
func NewAssignSerialsCommand(
	orderItemID kernel.UUID,
	productID kernel.UUID,
	serialIDs []kernel.UUID,
	actor string,
) (AssignSerialsCommand, error) {
	assignCommand := AssignSerialsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setOrderItemID(orderItemID),
		assignCommand.setProductID(productID),
		assignCommand.setSerialIDs(serialIDs),
		assignCommand.setActor(actor),
	); err != nil {
		return AssignSerialsCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignSerialsCommandIsNotConstructed if validation fails.
func (c AssignSerialsCommand) Validate() error {
	return c.guard.Validate(ErrAssignSerialsCommandIsNotConstructed)
}

// OrderItemID returns the order item the units are reserved for.
func (c AssignSerialsCommand) OrderItemID() kernel.UUID {
	return c.orderItemID
}

// ProductID returns the product the caller expects the order item to sell.
func (c AssignSerialsCommand) ProductID() kernel.UUID {
	return c.productID
}

// SerialIDs returns the identifiers of the units to reserve.
func (c AssignSerialsCommand) SerialIDs() []kernel.UUID {
	return c.serialIDs
}

// Actor returns the admin performing the assignment.
func (c AssignSerialsCommand) Actor() string {
	return c.actor
}

func (c *AssignSerialsCommand) setOrderItemID(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}

	c.orderItemID = orderItemID
	return nil
}

func (c *AssignSerialsCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *AssignSerialsCommand) setSerialIDs(serialIDs []kernel.UUID) error {
	if err := validateSerialIDs(serialIDs); err != nil {
		return err
	}

	c.serialIDs = serialIDs
	return nil
}

func (c *AssignSerialsCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
