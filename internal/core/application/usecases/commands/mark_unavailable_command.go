package commands

import (
	"errors"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/serialunit"
	"allocation/internal/pkg/errs"
	"allocation/internal/pkg/guard"
)

var ErrMarkUnavailableCommandIsNotConstructed = errors.New(
	"MarkUnavailableCommand must be created via NewMarkUnavailableCommand constructor",
)

// MarkUnavailableCommand represents a request to write units off from
// sellable inventory, as sold outside the dealer flow or as damaged.
// Only in-stock units can be written off.
type MarkUnavailableCommand struct { //nolint:recvcheck //using for validation
	serialIDs []kernel.UUID
	reason    serialunit.State
	actor     string

	guard guard.ConstructorGuard
}

// NewMarkUnavailableCommand creates a command to write units off.
// Validates that the unit list is non-empty without duplicates, the reason
// is Sold or Damaged, and the actor is named.
func NewMarkUnavailableCommand(
	serialIDs []kernel.UUID,
	reason serialunit.State,
	actor string,
) (MarkUnavailableCommand, error) {
	markCommand := MarkUnavailableCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		markCommand.setSerialIDs(serialIDs),
		markCommand.setReason(reason),
		markCommand.setActor(actor),
	); err != nil {
		return MarkUnavailableCommand{}, err
	}

	return markCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkUnavailableCommandIsNotConstructed if validation fails.
func (c MarkUnavailableCommand) Validate() error {
	return c.guard.Validate(ErrMarkUnavailableCommandIsNotConstructed)
}

// SerialIDs returns the identifiers of the units to write off.
func (c MarkUnavailableCommand) SerialIDs() []kernel.UUID {
	return c.serialIDs
}

// Reason returns the terminal state the units are written off to.
func (c MarkUnavailableCommand) Reason() serialunit.State {
	return c.reason
}

// Actor returns the admin performing the write-off.
func (c MarkUnavailableCommand) Actor() string {
	return c.actor
}

func (c *MarkUnavailableCommand) setSerialIDs(serialIDs []kernel.UUID) error {
	if err := validateSerialIDs(serialIDs); err != nil {
		return err
	}

	c.serialIDs = serialIDs
	return nil
}

func (c *MarkUnavailableCommand) setReason(reason serialunit.State) error {
	if reason != serialunit.Sold && reason != serialunit.Damaged {
		return errs.NewValueIsInvalidError("reason must be " + serialunit.Sold.String() + " or " + serialunit.Damaged.String())
	}

	c.reason = reason
	return nil
}

func (c *MarkUnavailableCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
