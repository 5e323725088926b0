package orderitemrepo_test

import (
	"context"
	"testing"
	"time"

	"allocation/internal/adapters/out/postgres/orderitemrepo"
	"allocation/internal/core/domain/model/kernel"
	"allocation/internal/core/domain/model/orderitem"
	"allocation/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderItemRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	tracker   *MockAggregateTracker
	repo      *orderitemrepo.GormOrderItemRepository
}

func (suite *OrderItemRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderitemrepo.OrderItemDTO{}))
}

func (suite *OrderItemRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repo = orderitemrepo.NewGormOrderItemRepository(suite.db, suite.tracker)
}

func (suite *OrderItemRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderItemRepositoryIntegrationTestSuite) newItem(quantity int) *orderitem.OrderItem {
	item, err := orderitem.NewOrderItem(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), quantity)
	suite.Require().NoError(err)
	return item
}

func (suite *OrderItemRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	item := suite.newItem(3)

	suite.Require().NoError(suite.repo.Add(ctx, item))

	restored, err := suite.repo.Get(ctx, item.ID())
	suite.Require().NoError(err)
	suite.True(restored.IsEqual(item))
	suite.Equal(item.OrderID(), restored.OrderID())
	suite.Equal(item.ProductID(), restored.ProductID())
	suite.Equal(3, restored.Quantity())
	suite.Equal(orderitem.Pending, restored.Status())
}

func (suite *OrderItemRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderItemRepositoryIntegrationTestSuite) TestUpdateStatus() {
	ctx := context.Background()
	item := suite.newItem(2)
	suite.Require().NoError(suite.repo.Add(ctx, item))

	suite.Require().NoError(suite.repo.UpdateStatus(ctx, item.ID(), orderitem.Partial))

	restored, err := suite.repo.Get(ctx, item.ID())
	suite.Require().NoError(err)
	suite.Equal(orderitem.Partial, restored.Status())
}

func (suite *OrderItemRepositoryIntegrationTestSuite) TestUpdateStatus_NotFound() {
	err := suite.repo.UpdateStatus(context.Background(), kernel.NewUUID(), orderitem.Completed)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderItemRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderItemRepositoryIntegrationTestSuite))
}
