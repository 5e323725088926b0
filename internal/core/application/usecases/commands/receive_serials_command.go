package commands

import (
	"errors"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/pkg/errs"
	"allocation/internal/pkg/guard"
)

var (
	ErrReceiveSerialsCommandIsNotConstructed = errors.New(
		"ReceiveSerialsCommand must be created via NewReceiveSerialsCommand constructor",
	)
	ErrSerialNumbersAreRequired = errors.New("at least one serial number is required")
	ErrActorIsRequired          = errors.New("actor is required")
)

// ReceiveSerialsCommand represents a warehouse intake: a batch of freshly
// serialized units of one product entering sellable stock.
//
// Example:
//
//	cmd, err := NewReceiveSerialsCommand(productID, []string{"SN-001", "SN-002"}, "admin@corp")
//	if err != nil {
//	    return fmt.Errorf("invalid intake data: %w", err)
//	}
//
//	handler := NewReceiveSerialsCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to receive serials: %w", err)
//	}
type ReceiveSerialsCommand struct { //nolint:recvcheck //using for validation
	productID     kernel.UUID
	serialNumbers []string
	actor         string

	guard guard.ConstructorGuard
}

// NewReceiveSerialsCommand creates a command to register received units.
// Validates that the product ID is valid, the serial number list is
// non-empty with no blanks or duplicates, and the actor is named.
func NewReceiveSerialsCommand(
	productID kernel.UUID,
	serialNumbers []string,
	actor string,
) (ReceiveSerialsCommand, error) {
	receiveCommand := ReceiveSerialsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		receiveCommand.setProductID(productID),
		receiveCommand.setSerialNumbers(serialNumbers),
		receiveCommand.setActor(actor),
	); err != nil {
		return ReceiveSerialsCommand{}, err
	}

	return receiveCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReceiveSerialsCommandIsNotConstructed if validation fails.
func (c ReceiveSerialsCommand) Validate() error {
	return c.guard.Validate(ErrReceiveSerialsCommandIsNotConstructed)
}

// ProductID returns the product the received units belong to.
func (c ReceiveSerialsCommand) ProductID() kernel.UUID {
	return c.productID
}

// SerialNumbers returns the serial numbers of the received units.
func (c ReceiveSerialsCommand) SerialNumbers() []string {
	return c.serialNumbers
}

// Actor returns the admin performing the intake.
func (c ReceiveSerialsCommand) Actor() string {
	return c.actor
}

func (c *ReceiveSerialsCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *ReceiveSerialsCommand) setSerialNumbers(serialNumbers []string) error {
	if len(serialNumbers) == 0 {
		return ErrSerialNumbersAreRequired
	}

	seen := make(map[string]struct{}, len(serialNumbers))
	for _, serialNumber := range serialNumbers {
		if serialNumber == "" {
			return errs.NewValueIsRequiredError("serialNumber")
		}
		if _, ok := seen[serialNumber]; ok {
			return errs.NewValueIsInvalidError("serial number " + serialNumber + " is listed twice")
		}
		seen[serialNumber] = struct{}{}
	}

	c.serialNumbers = serialNumbers
	return nil
}

func (c *ReceiveSerialsCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
