package commands

import (
	"errors"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/pkg/guard"
)

var ErrUnassignSerialsCommandIsNotConstructed = errors.New(
	"UnassignSerialsCommand must be created via NewUnassignSerialsCommand constructor",
)

// UnassignSerialsCommand represents a request to release reserved units
// back into stock. Only units currently assigned to the named order item
// can be released; allocated units are out of reach.
type UnassignSerialsCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	serialIDs   []kernel.UUID
	actor       string

	guard guard.ConstructorGuard
}

// NewUnassignSerialsCommand creates a command to release units from an
// order item. Validates that the order item ID is valid, the unit list is
// non-empty without duplicates, and the actor is named.
func NewUnassignSerialsCommand(
	orderItemID kernel.UUID,
	serialIDs []kernel.UUID,
	actor string,
) (UnassignSerialsCommand, error) {
	unassignCommand := UnassignSerialsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		unassignCommand.setOrderItemID(orderItemID),
		unassignCommand.setSerialIDs(serialIDs),
		unassignCommand.setActor(actor),
	); err != nil {
		return UnassignSerialsCommand{}, err
	}

	return unassignCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUnassignSerialsCommandIsNotConstructed if validation fails.
func (c UnassignSerialsCommand) Validate() error {
	return c.guard.Validate(ErrUnassignSerialsCommandIsNotConstructed)
}

// OrderItemID returns the order item the units are released from.
func (c UnassignSerialsCommand) OrderItemID() kernel.UUID {
	return c.orderItemID
}

// SerialIDs returns the identifiers of the units to release.
func (c UnassignSerialsCommand) SerialIDs() []kernel.UUID {
	return c.serialIDs
}

// Actor returns the admin performing the release.
func (c UnassignSerialsCommand) Actor() string {
	return c.actor
}

func (c *UnassignSerialsCommand) setOrderItemID(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}

	c.orderItemID = orderItemID
	return nil
}

func (c *UnassignSerialsCommand) setSerialIDs(serialIDs []kernel.UUID) error {
	if err := validateSerialIDs(serialIDs); err != nil {
		return err
	}

	c.serialIDs = serialIDs
	return nil
}

func (c *UnassignSerialsCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
