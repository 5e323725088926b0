package commands_test

import (
	"context"

	"allocation/internal/core/application/usecases/commands"
	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/orderitem"
	"allocation/internal/core/domain/model/serialunit"
	"allocation/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockSerialUnitRepository struct{ mock.Mock }

func (m *MockSerialUnitRepository) Add(ctx context.Context, aggregate *serialunit.SerialUnit) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockSerialUnitRepository) Get(ctx context.Context, id kernel.UUID) (*serialunit.SerialUnit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*serialunit.SerialUnit), args.Error(1)
}

func (m *MockSerialUnitRepository) GetByProduct(
	ctx context.Context, productID kernel.UUID, state serialunit.State,
) ([]*serialunit.SerialUnit, error) {
	args := m.Called(ctx, productID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*serialunit.SerialUnit), args.Error(1)
}

func (m *MockSerialUnitRepository) GetByOrderItem(
	ctx context.Context, orderItemID kernel.UUID, states ...serialunit.State,
) ([]*serialunit.SerialUnit, error) {
	callArgs := []any{ctx, orderItemID}
	for _, state := range states {
		callArgs = append(callArgs, state)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*serialunit.SerialUnit), args.Error(1)
}

func (m *MockSerialUnitRepository) CountByOrderItem(
	ctx context.Context, orderItemID kernel.UUID, states ...serialunit.State,
) (int, error) {
	callArgs := []any{ctx, orderItemID}
	for _, state := range states {
		callArgs = append(callArgs, state)
	}
	args := m.Called(callArgs...)
	return args.Int(0), args.Error(1)
}

func (m *MockSerialUnitRepository) UpdateWithStateCheck(
	ctx context.Context, aggregate *serialunit.SerialUnit, expectedState serialunit.State,
) error {
	args := m.Called(ctx, aggregate, expectedState)
	return args.Error(0)
}

type MockOrderItemRepository struct{ mock.Mock }

func (m *MockOrderItemRepository) Get(ctx context.Context, id kernel.UUID) (*orderitem.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderitem.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) UpdateStatus(
	ctx context.Context, id kernel.UUID, status orderitem.Status,
) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) SerialUnitRepository() ports.SerialUnitRepository {
	args := m.Called()
	return args.Get(0).(ports.SerialUnitRepository)
}

func (m *MockUoW) OrderItemRepository() ports.OrderItemRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderItemRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockSerialUnitUoWFactory struct{ mock.Mock }

func (m *MockSerialUnitUoWFactory) Create() commands.SerialUnitUoW {
	args := m.Called()
	return args.Get(0).(commands.SerialUnitUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, actor string, events []serialunit.TransitionEvent) {
	m.Called(ctx, actor, events)
}
