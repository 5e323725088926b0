package commands

import (
	"context"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/serialunit"
	"allocation/internal/core/domain/services"
	"allocation/internal/core/ports"
)

// stagedUnit pairs a unit with the state it held before the in-memory
// transition, which is the expected prior state for its compare-and-set
// write.
type stagedUnit struct {
	unit  *serialunit.SerialUnit
	prior serialunit.State
}

// writeStaged issues the compare-and-set write for every staged unit.
// A conflict on any unit aborts the batch; the surrounding transaction
// rollback reverts the units already written.
func writeStaged(ctx context.Context, repo ports.SerialUnitRepository, staged []stagedUnit) error {
	for _, s := range staged {
		if err := repo.UpdateWithStateCheck(ctx, s.unit, s.prior); err != nil {
			return err
		}
	}
	return nil
}

// reprojectOrderItem recomputes the fulfillment status of an order item
// from the committed serial counts and records it when it changed. Called
// inside the batch transaction so the projected status is always
// consistent with the counts it derives from.
func reprojectOrderItem(
	ctx context.Context,
	serialRepo ports.SerialUnitRepository,
	orderItemRepo ports.OrderItemRepository,
	orderItemID kernel.UUID,
) error {
	item, err := orderItemRepo.Get(ctx, orderItemID)
	if err != nil {
		return err
	}

	assigned, err := serialRepo.CountByOrderItem(ctx, item.ID(), serialunit.AssignedToOrderItem)
	if err != nil {
		return err
	}

	allocated, err := serialRepo.CountByOrderItem(ctx, item.ID(), serialunit.AllocatedToDealer)
	if err != nil {
		return err
	}

	status, err := services.NewOrderItemProjector().Project(item.Quantity(), assigned, allocated)
	if err != nil {
		return err
	}

	if status == item.Status() {
		return nil
	}

	return orderItemRepo.UpdateStatus(ctx, item.ID(), status)
}

// collectEvents gathers the pending transition events of every staged unit
// for post-commit publication.
func collectEvents(staged []stagedUnit) []serialunit.TransitionEvent {
	events := make([]serialunit.TransitionEvent, 0, len(staged))
	for _, s := range staged {
		events = append(events, s.unit.PendingEvents()...)
		s.unit.ClearPendingEvents()
	}
	return events
}
