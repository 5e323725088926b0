package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "allocation/internal/adapters/out/postgres"
	"allocation/internal/adapters/out/postgres/orderitemrepo"
	"allocation/internal/adapters/out/postgres/serialunitrepo"
	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/serialunit"
	"allocation/internal/core/ports"
	"allocation/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies the transactional semantics the
// transition engine relies on: writes inside a unit of work become visible
// only on commit, and a rollback reverts every write of the batch.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE serial_units, order_items").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newUnit(productID kernel.UUID, serialNumber string) *serialunit.SerialUnit {
	unit, err := serialunit.NewSerialUnit(kernel.NewUUID(), serialNumber, productID)
	suite.Require().NoError(err)
	return unit
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_MakesWritesVisible() {
	ctx := context.Background()
	unit := suite.newUnit(kernel.NewUUID(), "SN-1")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.SerialUnitRepository().Add(ctx, unit))
	suite.Require().NoError(uow.Commit(ctx))

	outside := suite.factory.Create()
	restored, err := outside.SerialUnitRepository().Get(ctx, unit.ID())
	suite.Require().NoError(err)
	suite.True(restored.IsEqual(unit))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWrites() {
	ctx := context.Background()
	unit := suite.newUnit(kernel.NewUUID(), "SN-1")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.SerialUnitRepository().Add(ctx, unit))
	suite.Require().NoError(uow.Rollback(ctx))

	outside := suite.factory.Create()
	_, err := outside.SerialUnitRepository().Get(ctx, unit.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_RevertsPartialBatch() {
	ctx := context.Background()
	productID := kernel.NewUUID()
	orderItemID := kernel.NewUUID()

	// Two units committed in stock.
	unit1 := suite.newUnit(productID, "SN-1")
	unit2 := suite.newUnit(productID, "SN-2")
	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.SerialUnitRepository().Add(ctx, unit1))
	suite.Require().NoError(seed.SerialUnitRepository().Add(ctx, unit2))
	suite.Require().NoError(seed.Commit(ctx))

	// A batch assigns the first unit, then fails on the second; the
	// rollback must revert the already-applied first write.
	batch := suite.factory.Create()
	suite.Require().NoError(batch.Begin(ctx))
	repo := batch.SerialUnitRepository()

	suite.Require().NoError(unit1.AssignToOrderItem(orderItemID))
	suite.Require().NoError(repo.UpdateWithStateCheck(ctx, unit1, serialunit.InStock))

	suite.Require().NoError(unit2.AssignToOrderItem(orderItemID))
	err := repo.UpdateWithStateCheck(ctx, unit2, serialunit.AssignedToOrderItem) // wrong prior state
	suite.Require().ErrorIs(err, ports.ErrConflict)

	suite.Require().NoError(batch.Rollback(ctx))

	outside := suite.factory.Create()
	restored1, err := outside.SerialUnitRepository().Get(ctx, unit1.ID())
	suite.Require().NoError(err)
	suite.Equal(serialunit.InStock, restored1.State(), "rolled-back batch leaves no partial assignment")
	suite.Nil(restored1.OrderItemID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_IsIdempotent() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
