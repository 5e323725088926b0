package commands

import (
	"context"

	"allocation/internal/core/domain/model/serialunit"
	"allocation/internal/core/domain/services"
	"allocation/internal/core/ports"
)

// AssignSerialsCommandHandler reserves units against an order item.
// Validates the full batch (ownership, product, quantity headroom) before
// writing anything, then applies one compare-and-set per unit inside a
// single transaction and re-projects the order item's fulfillment status.
//
// Example:
//
//	handler := NewAssignSerialsCommandHandler(uowFactory, publisher)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrQuantityExceeded):
//	    log.Println("order item already has enough units reserved")
//	case errors.Is(err, ports.ErrConflict):
//	    log.Println("a unit changed concurrently, re-fetch and retry")
//	case err != nil:
//	    log.Printf("assignment failed: %v", err)
//	}
type AssignSerialsCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewAssignSerialsCommandHandler creates a handler for serial assignment.
// Requires a UoWFactory for the transactional writes and an EventPublisher
// for post-commit transition events.
func NewAssignSerialsCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) AssignSerialsCommandHandler {
	return AssignSerialsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the assignment command.
// Loads the order item and every named unit, checks the product match and
// the quantity invariant, then writes each unit with a state guard. Any
// failed guard aborts the batch; the rollback reverts units already
// written. On success the order item's status is re-projected in the same
// transaction and the transitions are published after commit.
func (h AssignSerialsCommandHandler) Handle(ctx context.Context, command AssignSerialsCommand) error {
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
	if !item.ProductID().IsEqual(command.ProductID()) {
		return serialunit.ErrProductMismatch
	}

	staged := make([]stagedUnit, 0, len(command.SerialIDs()))
	for _, serialID := range command.SerialIDs() {
		unit, err := serialRepo.Get(ctx, serialID)
		if err != nil {
			return err
		}
		if !unit.BelongsToProduct(item.ProductID()) {
			return serialunit.ErrProductMismatch
		}

		prior := unit.State()
		if err = unit.AssignToOrderItem(item.ID()); err != nil {
			return err
		}

		staged = append(staged, stagedUnit{unit: unit, prior: prior})
	}

	reserved, err := serialRepo.CountByOrderItem(
		ctx, item.ID(), serialunit.AssignedToOrderItem, serialunit.AllocatedToDealer,
	)
	if err != nil {
		return err
	}
	if err = services.NewQuantityChecker().Validate(item.Quantity(), reserved, len(staged)); err != nil {
		return err
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
