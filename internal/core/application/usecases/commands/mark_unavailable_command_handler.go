package commands

import (
	"context"

	"allocation/internal/core/ports"
)

// MarkUnavailableCommandHandler writes units off from sellable inventory.
// Units must be in stock; reserved or already written-off units reject the
// batch. No order item is touched, so the handler only needs the serial
// unit side of the store.
type MarkUnavailableCommandHandler struct {
	uowFactory SerialUnitUoWFactory
	publisher  ports.EventPublisher
}

// NewMarkUnavailableCommandHandler creates a handler for inventory
// write-offs.
func NewMarkUnavailableCommandHandler(
	uowFactory SerialUnitUoWFactory,
	publisher ports.EventPublisher,
) MarkUnavailableCommandHandler {
	return MarkUnavailableCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the write-off command.
// Loads every named unit, applies the terminal write-off transition, then
// writes each unit with a state guard in one transaction. Transition
// events are published after commit.
func (h MarkUnavailableCommandHandler) Handle(ctx context.Context, command MarkUnavailableCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	serialRepo := uow.SerialUnitRepository()

	staged := make([]stagedUnit, 0, len(command.SerialIDs()))
	for _, serialID := range command.SerialIDs() {
		unit, err := serialRepo.Get(ctx, serialID)
		if err != nil {
			return err
		}

		prior := unit.State()
		if err = unit.WriteOff(command.Reason()); err != nil {
			return err
		}

		staged = append(staged, stagedUnit{unit: unit, prior: prior})
	}

	if err := writeStaged(ctx, serialRepo, staged); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, command.Actor(), collectEvents(staged))
	return nil
}
