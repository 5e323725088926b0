package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgresadapter "allocation/internal/adapters/out/postgres"
	"allocation/internal/adapters/out/postgres/orderitemrepo"
	"allocation/internal/adapters/out/postgres/serialunitrepo"
	"allocation/internal/core/application/usecases/commands"
	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/orderitem"
	"allocation/internal/core/domain/model/serialunit"
	"allocation/internal/core/domain/services"
	"allocation/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type uowFactoryFunc func() commands.UoW

func (f uowFactoryFunc) Create() commands.UoW { return f() }

type serialUnitUoWFactoryFunc func() commands.SerialUnitUoW

func (f serialUnitUoWFactoryFunc) Create() commands.SerialUnitUoW { return f() }

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, []serialunit.TransitionEvent) {}

// AllocationFlowIntegrationTestSuite drives the full unit lifecycle through
// the real handlers against a real database: intake, assignment, dealer
// allocation and the status projection of the touched order items.
type AllocationFlowIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory

	receiveHandler  commands.ReceiveSerialsCommandHandler
	assignHandler   commands.AssignSerialsCommandHandler
	unassignHandler commands.UnassignSerialsCommandHandler
	allocateHandler commands.AllocateSerialsCommandHandler
}

func (suite *AllocationFlowIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&serialunitrepo.SerialUnitDTO{}, &orderitemrepo.OrderItemDTO{}))

	gormFactory := postgresadapter.NewGormUnitOfWorkFactory(db)
	suite.factory = gormFactory

	uowFactory := uowFactoryFunc(func() commands.UoW { return gormFactory.Create() })
	serialUoWFactory := serialUnitUoWFactoryFunc(func() commands.SerialUnitUoW { return gormFactory.Create() })

	suite.receiveHandler = commands.NewReceiveSerialsCommandHandler(serialUoWFactory)
	suite.assignHandler = commands.NewAssignSerialsCommandHandler(uowFactory, noopPublisher{})
	suite.unassignHandler = commands.NewUnassignSerialsCommandHandler(uowFactory, noopPublisher{})
	suite.allocateHandler = commands.NewAllocateSerialsCommandHandler(uowFactory, noopPublisher{})
}

func (suite *AllocationFlowIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE serial_units, order_items").Error)
}

func (suite *AllocationFlowIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AllocationFlowIntegrationTestSuite) seedOrderItem(productID kernel.UUID, quantity int) *orderitem.OrderItem {
	ctx := context.Background()
	item, err := orderitem.NewOrderItem(kernel.NewUUID(), kernel.NewUUID(), productID, quantity)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	repo := uow.OrderItemRepository().(*orderitemrepo.GormOrderItemRepository)
	suite.Require().NoError(repo.Add(ctx, item))
	suite.Require().NoError(uow.Commit(ctx))
	return item
}

func (suite *AllocationFlowIntegrationTestSuite) receive(productID kernel.UUID, serialNumbers ...string) {
	cmd, err := commands.NewReceiveSerialsCommand(productID, serialNumbers, "admin@corp")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.receiveHandler.Handle(context.Background(), cmd))
}

func (suite *AllocationFlowIntegrationTestSuite) inStockIDs(productID kernel.UUID) []kernel.UUID {
	units, err := suite.factory.Create().SerialUnitRepository().
		GetByProduct(context.Background(), productID, serialunit.InStock)
	suite.Require().NoError(err)

	ids := make([]kernel.UUID, len(units))
	for i, unit := range units {
		ids[i] = unit.ID()
	}
	return ids
}

func (suite *AllocationFlowIntegrationTestSuite) itemStatus(id kernel.UUID) orderitem.Status {
	item, err := suite.factory.Create().OrderItemRepository().Get(context.Background(), id)
	suite.Require().NoError(err)
	return item.Status()
}

func (suite *AllocationFlowIntegrationTestSuite) TestFullLifecycle() {
	ctx := context.Background()
	productID := kernel.NewUUID()
	dealerID := kernel.NewUUID()

	item := suite.seedOrderItem(productID, 2)
	suite.receive(productID, "SN-1", "SN-2", "SN-3")

	ids := suite.inStockIDs(productID)
	suite.Require().Len(ids, 3)

	// Reserving one of two required units leaves the item partial.
	assignOne, err := commands.NewAssignSerialsCommand(item.ID(), productID, ids[:1], "admin@corp")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.assignHandler.Handle(ctx, assignOne))
	suite.Equal(orderitem.Partial, suite.itemStatus(item.ID()))

	// Reserving the second fills the quantity; assignment alone does not
	// complete the item.
	assignTwo, err := commands.NewAssignSerialsCommand(item.ID(), productID, ids[1:2], "admin@corp")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.assignHandler.Handle(ctx, assignTwo))
	suite.Equal(orderitem.Partial, suite.itemStatus(item.ID()))

	// Handing both units to the dealer completes the item.
	allocate, err := commands.NewAllocateSerialsCommand(ids[:2], dealerID, "admin@corp")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.allocateHandler.Handle(ctx, allocate))
	suite.Equal(orderitem.Completed, suite.itemStatus(item.ID()))

	allocated, err := suite.factory.Create().SerialUnitRepository().
		GetByOrderItem(ctx, item.ID(), serialunit.AllocatedToDealer)
	suite.Require().NoError(err)
	suite.Require().Len(allocated, 2)
	for _, unit := range allocated {
		suite.Require().NotNil(unit.DealerAccountID())
		suite.True(unit.DealerAccountID().IsEqual(dealerID))
		suite.Require().NotNil(unit.OrderItemID(), "allocation keeps the order line attribution")
	}
}

func (suite *AllocationFlowIntegrationTestSuite) TestUnassign_ReturnsUnitToStock() {
	ctx := context.Background()
	productID := kernel.NewUUID()

	item := suite.seedOrderItem(productID, 2)
	suite.receive(productID, "SN-1", "SN-2")
	ids := suite.inStockIDs(productID)

	assign, err := commands.NewAssignSerialsCommand(item.ID(), productID, ids, "admin@corp")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.assignHandler.Handle(ctx, assign))

	unassign, err := commands.NewUnassignSerialsCommand(item.ID(), ids[:1], "admin@corp")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.unassignHandler.Handle(ctx, unassign))

	suite.Equal(orderitem.Partial, suite.itemStatus(item.ID()))
	suite.Len(suite.inStockIDs(productID), 1)

	released, err := suite.factory.Create().SerialUnitRepository().Get(ctx, ids[0])
	suite.Require().NoError(err)
	suite.Equal(serialunit.InStock, released.State())
	suite.Nil(released.OrderItemID())
}

func (suite *AllocationFlowIntegrationTestSuite) TestUnassign_AllocatedUnitIsRejected() {
	ctx := context.Background()
	productID := kernel.NewUUID()
	dealerID := kernel.NewUUID()

	item := suite.seedOrderItem(productID, 1)
	suite.receive(productID, "SN-1")
	ids := suite.inStockIDs(productID)

	assign, err := commands.NewAssignSerialsCommand(item.ID(), productID, ids, "admin@corp")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.assignHandler.Handle(ctx, assign))

	allocate, err := commands.NewAllocateSerialsCommand(ids, dealerID, "admin@corp")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.allocateHandler.Handle(ctx, allocate))

	unassign, err := commands.NewUnassignSerialsCommand(item.ID(), ids, "admin@corp")
	suite.Require().NoError(err)
	err = suite.unassignHandler.Handle(ctx, unassign)
	suite.Require().ErrorIs(err, serialunit.ErrAllocationIsTerminal)

	suite.Equal(orderitem.Completed, suite.itemStatus(item.ID()))
}

func (suite *AllocationFlowIntegrationTestSuite) TestConcurrentAssign_DisjointUnitsCannotOverbook() {
	ctx := context.Background()
	productID := kernel.NewUUID()

	item := suite.seedOrderItem(productID, 1)
	suite.receive(productID, "SN-1", "SN-2")
	ids := suite.inStockIDs(productID)
	suite.Require().Len(ids, 2)

	// Two admins reserve different units against the same quantity-1 item
	// at once. The per-unit compare-and-set cannot arbitrate this race, so
	// the serializable batch transaction must: exactly one commit wins.
	start := make(chan struct{})
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		cmd, err := commands.NewAssignSerialsCommand(item.ID(), productID, ids[i:i+1], "admin@corp")
		suite.Require().NoError(err)

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results <- suite.assignHandler.Handle(ctx, cmd)
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var successes int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		isRetryableLoss := errors.Is(err, ports.ErrConflict) || errors.Is(err, services.ErrQuantityExceeded)
		suite.Require().True(isRetryableLoss, "loser must see a conflict-class error, got: %v", err)
	}
	suite.Require().Equal(1, successes, "exactly one of the racing batches may commit")

	reserved, err := suite.factory.Create().SerialUnitRepository().
		CountByOrderItem(ctx, item.ID(), serialunit.AssignedToOrderItem, serialunit.AllocatedToDealer)
	suite.Require().NoError(err)
	suite.Equal(1, reserved, "reserved count stays within the item quantity")
	suite.Len(suite.inStockIDs(productID), 1)
	suite.Equal(orderitem.Partial, suite.itemStatus(item.ID()))
}

func (suite *AllocationFlowIntegrationTestSuite) TestAssign_BeyondQuantityIsRejectedAtomically() {
	ctx := context.Background()
	productID := kernel.NewUUID()

	item := suite.seedOrderItem(productID, 2)
	suite.receive(productID, "SN-1", "SN-2", "SN-3")
	ids := suite.inStockIDs(productID)

	assign, err := commands.NewAssignSerialsCommand(item.ID(), productID, ids, "admin@corp")
	suite.Require().NoError(err)
	err = suite.assignHandler.Handle(ctx, assign)
	suite.Require().ErrorIs(err, services.ErrQuantityExceeded)

	// The whole batch is rejected: no unit left stock.
	suite.Len(suite.inStockIDs(productID), 3)
	suite.Equal(orderitem.Pending, suite.itemStatus(item.ID()))
}

func TestAllocationFlowIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AllocationFlowIntegrationTestSuite))
}
