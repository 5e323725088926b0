package commands_test

import (
	"errors"
	"testing"

	"allocation/internal/core/application/usecases/commands"
	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/serialunit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReceiveSerialsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	cmd, err := commands.NewReceiveSerialsCommand(productID, []string{"SN-001", "SN-002"}, "admin@corp")
	require.NoError(t, err)

	serialRepo := new(MockSerialUnitRepository)
	uow := new(MockUoW)

	var received []*serialunit.SerialUnit
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SerialUnitRepository").Return(serialRepo).Once(),
		serialRepo.On("Add", ctx, mock.AnythingOfType("*serialunit.SerialUnit")).
			Run(func(args mock.Arguments) {
				received = append(received, args.Get(1).(*serialunit.SerialUnit))
			}).
			Return(nil).
			Twice(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSerialUnitUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReceiveSerialsCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, "SN-001", received[0].SerialNumber())
	assert.Equal(t, "SN-002", received[1].SerialNumber())
	for _, unit := range received {
		assert.Equal(t, serialunit.InStock, unit.State())
		assert.Equal(t, productID, unit.ProductID())
	}
	serialRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestReceiveSerialsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ReceiveSerialsCommand{} // not constructed properly

	factory := new(MockSerialUnitUoWFactory)
	handler := commands.NewReceiveSerialsCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrReceiveSerialsCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestReceiveSerialsCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReceiveSerialsCommand(kernel.NewUUID(), []string{"SN-001"}, "admin@corp")
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockSerialUnitUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewReceiveSerialsCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}

func TestReceiveSerialsCommandHandler_Handle_DuplicateSerialAborts(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReceiveSerialsCommand(kernel.NewUUID(), []string{"SN-001", "SN-002"}, "admin@corp")
	require.NoError(t, err)

	duplicateErr := errors.New("serial number already registered")

	serialRepo := new(MockSerialUnitRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SerialUnitRepository").Return(serialRepo).Once(),
		serialRepo.On("Add", ctx, mock.AnythingOfType("*serialunit.SerialUnit")).Return(duplicateErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSerialUnitUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReceiveSerialsCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, duplicateErr)
	uow.AssertNotCalled(t, "Commit", ctx)
	serialRepo.AssertNumberOfCalls(t, "Add", 1)
}
