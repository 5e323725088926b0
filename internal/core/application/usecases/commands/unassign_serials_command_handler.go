package commands

import (
	"context"

	"allocation/internal/core/ports"
)

// UnassignSerialsCommandHandler releases reserved units back into stock.
// Each unit must be assigned to the named order item; releasing a unit
// that was never assigned, was assigned elsewhere, or was already
// allocated rejects the whole batch.
type UnassignSerialsCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewUnassignSerialsCommandHandler creates a handler for serial release.
func NewUnassignSerialsCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) UnassignSerialsCommandHandler {
	return UnassignSerialsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the release command.
// Loads the order item and every named unit, verifies each unit is owned
// by that order item, then writes each unit with a state guard and
// re-projects the order item's status in the same transaction. Transition
// events are published after commit.
func (h UnassignSerialsCommandHandler) Handle(ctx context.Context, command UnassignSerialsCommand) error {
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
	orderItemRepo := uow.OrderItemRepository()

	item, err := orderItemRepo.Get(ctx, command.OrderItemID())
	if err != nil {
		return err
	}

	staged := make([]stagedUnit, 0, len(command.SerialIDs()))
	for _, serialID := range command.SerialIDs() {
		unit, err := serialRepo.Get(ctx, serialID)
		if err != nil {
			return err
		}

		prior := unit.State()
		if err = unit.Unassign(item.ID()); err != nil {
			return err
		}

		staged = append(staged, stagedUnit{unit: unit, prior: prior})
	}

	if err = writeStaged(ctx, serialRepo, staged); err != nil {
		return err
	}

	if err = reprojectOrderItem(ctx, serialRepo, orderItemRepo, item.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, command.Actor(), collectEvents(staged))
	return nil
}
