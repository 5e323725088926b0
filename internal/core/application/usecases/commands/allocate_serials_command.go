package commands

import (
	"errors"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/pkg/guard"
)

var ErrAllocateSerialsCommandIsNotConstructed = errors.New(
	"AllocateSerialsCommand must be created via NewAllocateSerialsCommand constructor",
)

// AllocateSerialsCommand represents a request to hand reserved units over
// to a dealer account. The owning order items are derived from the units
// themselves; allocation is terminal.
type AllocateSerialsCommand struct { //nolint:recvcheck //using for validation
	serialIDs       []kernel.UUID
	dealerAccountID kernel.UUID
	actor           string

	guard guard.ConstructorGuard
}

// NewAllocateSerialsCommand creates a command to allocate units to a
// dealer. Validates that the dealer account ID is valid, the unit list is
// non-empty without duplicates, and the actor is named.
func NewAllocateSerialsCommand(
	serialIDs []kernel.UUID,
	dealerAccountID kernel.UUID,
	actor string,
) (AllocateSerialsCommand, error) {
	allocateCommand := AllocateSerialsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		allocateCommand.setSerialIDs(serialIDs),
		allocateCommand.setDealerAccountID(dealerAccountID),
		allocateCommand.setActor(actor),
	); err != nil {
		return AllocateSerialsCommand{}, err
	}

	return allocateCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAllocateSerialsCommandIsNotConstructed if validation fails.
func (c AllocateSerialsCommand) Validate() error {
	return c.guard.Validate(ErrAllocateSerialsCommandIsNotConstructed)
}

// SerialIDs returns the identifiers of the units to allocate.
func (c AllocateSerialsCommand) SerialIDs() []kernel.UUID {
	return c.serialIDs
}

// DealerAccountID returns the dealer account taking custody.
func (c AllocateSerialsCommand) DealerAccountID() kernel.UUID {
	return c.dealerAccountID
}

// Actor returns the admin performing the allocation.
func (c AllocateSerialsCommand) Actor() string {
	return c.actor
}

func (c *AllocateSerialsCommand) setSerialIDs(serialIDs []kernel.UUID) error {
	if err := validateSerialIDs(serialIDs); err != nil {
		return err
	}

	c.serialIDs = serialIDs
	return nil
}

func (c *AllocateSerialsCommand) setDealerAccountID(dealerAccountID kernel.UUID) error {
	if err := dealerAccountID.Validate(); err != nil {
		return err
	}

	c.dealerAccountID = dealerAccountID
	return nil
}

func (c *AllocateSerialsCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
