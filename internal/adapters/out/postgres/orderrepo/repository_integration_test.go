package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// stubAggregateTracker satisfies the repository's tracker dependency.
type stubAggregateTracker struct{}

func (s *stubAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance, in particular the conditional lifecycle
// updates that enforce at-most-once transitions.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, &stubAggregateTracker{})
}

func (suite *OrderRepositoryIntegrationTestSuite) newCreatedOrder(customerID kernel.UUID) *order.Order {
	price, err := kernel.MoneyFromString("10.00")
	suite.Require().NoError(err)
	item1, err := order.NewLineItem(kernel.NewUUID(), "Airpods", 2, price)
	suite.Require().NoError(err)

	price2, err := kernel.MoneyFromString("5.00")
	suite.Require().NoError(err)
	item2, err := order.NewLineItem(kernel.NewUUID(), "Keyboard", 1, price2)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customerID,
		[]order.LineItem{item1, item2},
		"221B Baker Street", "PayPal")
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) paymentRecord(transactionID string) order.PaymentRecord {
	record, err := order.NewPaymentRecord(transactionID, "jane@example.com", time.Now().UTC())
	suite.Require().NoError(err)
	return record
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.newCreatedOrder(kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(aggregate.ID()))
	suite.True(restored.CustomerID().IsEqual(aggregate.CustomerID()))
	suite.Equal(order.Created, restored.Status())
	suite.Equal("221B Baker Street", restored.ShippingAddress())
	suite.Equal("PayPal", restored.PaymentMethod())
	suite.Equal("25.00", restored.Totals().Items.String())
	suite.Equal("10.00", restored.Totals().Shipping.String())
	suite.Equal("3.75", restored.Totals().Tax.String())
	suite.Equal("38.75", restored.Totals().Grand.String())
	suite.Require().Len(restored.Items(), 2)
	suite.Equal("Airpods", restored.Items()[0].Name())
	suite.Equal(2, restored.Items()[0].Quantity())
	suite.Equal("Keyboard", restored.Items()[1].Name())
	suite.Nil(restored.Payment())
	suite.Nil(restored.DeliveredAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownID_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByCustomer_FiltersByOwner() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	mine1 := suite.newCreatedOrder(customerID)
	mine2 := suite.newCreatedOrder(customerID)
	other := suite.newCreatedOrder(kernel.NewUUID())

	for _, aggregate := range []*order.Order{mine1, mine2, other} {
		suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	}

	result, err := suite.repository.GetAllByCustomer(ctx, customerID)
	suite.Require().NoError(err)
	suite.Len(result, 2)
	for _, aggregate := range result {
		suite.True(aggregate.CustomerID().IsEqual(customerID))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInCreatedStatus_ExcludesPaid() {
	ctx := context.Background()
	created := suite.newCreatedOrder(kernel.NewUUID())
	paid := suite.newCreatedOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, created))
	suite.Require().NoError(suite.repository.Add(ctx, paid))

	suite.Require().NoError(paid.MarkPaid(suite.paymentRecord("TXN-1")))
	suite.Require().NoError(suite.repository.UpdatePayment(ctx, paid))

	result, err := suite.repository.GetAllInCreatedStatus(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID().IsEqual(created.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdatePayment_PersistsTransition() {
	ctx := context.Background()
	aggregate := suite.newCreatedOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	record := suite.paymentRecord("TXN-1")
	suite.Require().NoError(aggregate.MarkPaid(record))
	suite.Require().NoError(suite.repository.UpdatePayment(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Paid, restored.Status())
	suite.Require().NotNil(restored.Payment())
	suite.Equal("TXN-1", restored.Payment().TransactionID())
	suite.Equal("jane@example.com", restored.Payment().PayerEmail())
	suite.WithinDuration(record.PaidAt(), restored.Payment().PaidAt(), time.Second)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdatePayment_SecondWriterGetsStale() {
	ctx := context.Background()
	winner := suite.newCreatedOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, winner))

	// Two in-memory copies of the same stored order, as two concurrent
	// requests would hold.
	loser, err := suite.repository.Get(ctx, winner.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(winner.MarkPaid(suite.paymentRecord("TXN-1")))
	suite.Require().NoError(suite.repository.UpdatePayment(ctx, winner))

	suite.Require().NoError(loser.MarkPaid(suite.paymentRecord("TXN-2")))
	err = suite.repository.UpdatePayment(ctx, loser)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, ports.ErrStaleTransition)

	restored, err := suite.repository.Get(ctx, winner.ID())
	suite.Require().NoError(err)
	suite.Equal("TXN-1", restored.Payment().TransactionID(), "winner's record must survive")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateDelivery_PersistsTransition() {
	ctx := context.Background()
	aggregate := suite.newCreatedOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.MarkPaid(suite.paymentRecord("TXN-1")))
	suite.Require().NoError(suite.repository.UpdatePayment(ctx, aggregate))

	deliveredAt := time.Now().UTC()
	suite.Require().NoError(aggregate.MarkDelivered(deliveredAt))
	suite.Require().NoError(suite.repository.UpdateDelivery(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, restored.Status())
	suite.Require().NotNil(restored.DeliveredAt())
	suite.WithinDuration(deliveredAt, *restored.DeliveredAt(), time.Second)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateDelivery_UnpaidRowGetsStale() {
	ctx := context.Background()
	stored := suite.newCreatedOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, stored))

	// A copy that went through Paid to Delivered in memory while the
	// stored row is still Created.
	copyAggregate, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(copyAggregate.MarkPaid(suite.paymentRecord("TXN-1")))
	suite.Require().NoError(copyAggregate.MarkDelivered(time.Now().UTC()))

	err = suite.repository.UpdateDelivery(ctx, copyAggregate)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, ports.ErrStaleTransition)

	restored, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Created, restored.Status(), "conditional update must not touch the row")
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
