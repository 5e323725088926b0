package commands

import (
	"context"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/ports"
)

// AllocateSerialsCommandHandler hands reserved units over to a dealer
// account. Every unit must be assigned to an order item; the handler
// derives the owning order items from the units and re-projects each one,
// which is what flips a fully allocated order item to completed.
type AllocateSerialsCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewAllocateSerialsCommandHandler creates a handler for dealer allocation.
func NewAllocateSerialsCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) AllocateSerialsCommandHandler {
	return AllocateSerialsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the allocation command.
// Loads every named unit, applies the terminal allocation transition, then
// writes each unit with a state guard and re-projects every owning order
// item in the same transaction. Transition events are published after
// commit.
func (h AllocateSerialsCommandHandler) Handle(ctx context.Context, command AllocateSerialsCommand) error {
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

	staged := make([]stagedUnit, 0, len(command.SerialIDs()))
	seenItems := make(map[kernel.UUID]struct{})
	owningItems := make([]kernel.UUID, 0, 1)

	for _, serialID := range command.SerialIDs() {
		unit, err := serialRepo.Get(ctx, serialID)
		if err != nil {
			return err
		}

		prior := unit.State()
		if err = unit.AllocateToDealer(command.DealerAccountID()); err != nil {
			return err
		}

		orderItemID := unit.OrderItemID()
		if _, ok := seenItems[*orderItemID]; !ok {
			seenItems[*orderItemID] = struct{}{}
			owningItems = append(owningItems, *orderItemID)
		}

		staged = append(staged, stagedUnit{unit: unit, prior: prior})
	}

	if err := writeStaged(ctx, serialRepo, staged); err != nil {
		return err
	}

	for _, orderItemID := range owningItems {
		if err := reprojectOrderItem(ctx, serialRepo, orderItemRepo, orderItemID); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, command.Actor(), collectEvents(staged))
	return nil
}
