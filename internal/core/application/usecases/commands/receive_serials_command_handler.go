package commands

import (
	"context"

	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/serialunit"
)

// ReceiveSerialsCommandHandler registers a batch of received units.
// Each serial number becomes a new unit in stock; the whole batch is
// persisted in one transaction, so a duplicate serial rejects the batch
// without leaving partial intakes behind.
type ReceiveSerialsCommandHandler struct {
	uowFactory SerialUnitUoWFactory
}

// NewReceiveSerialsCommandHandler creates a handler for warehouse intake.
func NewReceiveSerialsCommandHandler(uowFactory SerialUnitUoWFactory) ReceiveSerialsCommandHandler {
	return ReceiveSerialsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the intake command.
// Creates a unit per serial number and persists them atomically. Unique
// serial enforcement happens at the storage layer; the first duplicate
// aborts the transaction.
func (h ReceiveSerialsCommandHandler) Handle(ctx context.Context, command ReceiveSerialsCommand) error {
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

	for _, serialNumber := range command.SerialNumbers() {
		unit, err := serialunit.NewSerialUnit(kernel.NewUUID(), serialNumber, command.ProductID())
		if err != nil {
			return err
		}

		if err = serialRepo.Add(ctx, unit); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
