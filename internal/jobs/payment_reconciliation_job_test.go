package jobs_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSweepOrderRepository struct{ mock.Mock }

func (m *MockSweepOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockSweepOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockSweepOrderRepository) GetAllByCustomer(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockSweepOrderRepository) GetAll(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockSweepOrderRepository) GetAllInCreatedStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}
func (m *MockSweepOrderRepository) UpdatePayment(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockSweepOrderRepository) UpdateDelivery(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockSweepUoW struct{ mock.Mock }

func (m *MockSweepUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSweepUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSweepUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockSweepUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockSweepUoWFactory struct{ mock.Mock }

func (m *MockSweepUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSweepVerifier struct{ mock.Mock }

func (m *MockSweepVerifier) Verify(ctx context.Context, transactionID string) (ports.VerifiedPayment, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(ports.VerifiedPayment), args.Error(1)
}
func (m *MockSweepVerifier) FindCompletedByOrder(ctx context.Context, orderID kernel.UUID) (ports.VerifiedPayment, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.VerifiedPayment), args.Error(1)
}

func newAwaitingOrder(t *testing.T) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromString("10.00")
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), "Airpods", 2, price)
	require.NoError(t, err)
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		[]order.LineItem{item}, "221B Baker Street", "PayPal")
	require.NoError(t, err)
	return aggregate
}

func completedCapture(transactionID string) ports.VerifiedPayment {
	return ports.VerifiedPayment{
		TransactionID: transactionID,
		Status:        "COMPLETED",
		PayerEmail:    "jane@example.com",
		UpdatedAt:     time.Now().UTC(),
	}
}

func newSweepJob(
	sweepRepo *MockSweepOrderRepository,
	verifier *MockSweepVerifier,
	factory *MockSweepUoWFactory,
) *jobs.PaymentReconciliationJob {
	handler := commands.NewMarkOrderPaidCommandHandler(factory, verifier, services.NewAccessPolicy())
	return jobs.NewPaymentReconciliationJob(sweepRepo, verifier, handler, slog.Default())
}

func TestPaymentReconciliationJob_Run_NoAwaitingOrders(t *testing.T) {
	ctx := t.Context()
	sweepRepo := new(MockSweepOrderRepository)
	sweepRepo.On("GetAllInCreatedStatus", ctx).Return([]*order.Order{}, nil).Once()

	verifier := new(MockSweepVerifier)
	factory := new(MockSweepUoWFactory)
	job := newSweepJob(sweepRepo, verifier, factory)

	err := job.Run(ctx)

	require.NoError(t, err)
	verifier.AssertNotCalled(t, "FindCompletedByOrder", mock.Anything, mock.Anything)
	sweepRepo.AssertExpectations(t)
}

func TestPaymentReconciliationJob_Run_NoCompletedCapture(t *testing.T) {
	ctx := t.Context()
	aggregate := newAwaitingOrder(t)

	sweepRepo := new(MockSweepOrderRepository)
	sweepRepo.On("GetAllInCreatedStatus", ctx).Return([]*order.Order{aggregate}, nil).Once()

	verifier := new(MockSweepVerifier)
	verifier.On("FindCompletedByOrder", ctx, aggregate.ID()).
		Return(ports.VerifiedPayment{}, errs.NewObjectNotFoundError("payment", aggregate.ID())).Once()

	factory := new(MockSweepUoWFactory)
	job := newSweepJob(sweepRepo, verifier, factory)

	err := job.Run(ctx)

	require.NoError(t, err)
	factory.AssertNotCalled(t, "Create")
	verifier.AssertExpectations(t)
}

func TestPaymentReconciliationJob_Run_RecoversLostConfirmation(t *testing.T) {
	ctx := t.Context()
	aggregate := newAwaitingOrder(t)

	sweepRepo := new(MockSweepOrderRepository)
	sweepRepo.On("GetAllInCreatedStatus", ctx).Return([]*order.Order{aggregate}, nil).Once()

	txRepo := new(MockSweepOrderRepository)
	uow := new(MockSweepUoW)
	verifier := new(MockSweepVerifier)
	mock.InOrder(
		verifier.On("FindCompletedByOrder", ctx, aggregate.ID()).
			Return(completedCapture("TXN-1"), nil).Once(),
		verifier.On("Verify", mock.Anything, "TXN-1").
			Return(completedCapture("TXN-1"), nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(txRepo).Once(),
		txRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		txRepo.On("UpdatePayment", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSweepUoWFactory)
	factory.On("Create").Return(uow).Once()

	job := newSweepJob(sweepRepo, verifier, factory)
	err := job.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, order.Paid, aggregate.Status())
	require.NotNil(t, aggregate.Payment())
	assert.Equal(t, "TXN-1", aggregate.Payment().TransactionID())
	verifier.AssertExpectations(t)
	uow.AssertExpectations(t)
	txRepo.AssertExpectations(t)
}

func TestPaymentReconciliationJob_Run_OneFailureDoesNotStopSweep(t *testing.T) {
	ctx := t.Context()
	failing := newAwaitingOrder(t)
	recoverable := newAwaitingOrder(t)

	sweepRepo := new(MockSweepOrderRepository)
	sweepRepo.On("GetAllInCreatedStatus", ctx).
		Return([]*order.Order{failing, recoverable}, nil).Once()

	verifier := new(MockSweepVerifier)
	verifier.On("FindCompletedByOrder", ctx, failing.ID()).
		Return(ports.VerifiedPayment{}, errs.NewRetryableFailureError("search payments")).Once()
	verifier.On("FindCompletedByOrder", ctx, recoverable.ID()).
		Return(completedCapture("TXN-2"), nil).Once()
	verifier.On("Verify", mock.Anything, "TXN-2").
		Return(completedCapture("TXN-2"), nil).Once()

	txRepo := new(MockSweepOrderRepository)
	txRepo.On("Get", mock.Anything, recoverable.ID()).Return(recoverable, nil).Once()
	txRepo.On("UpdatePayment", mock.Anything, recoverable).Return(nil).Once()

	uow := new(MockSweepUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(txRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSweepUoWFactory)
	factory.On("Create").Return(uow).Once()

	job := newSweepJob(sweepRepo, verifier, factory)
	err := job.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, order.Created, failing.Status())
	assert.Equal(t, order.Paid, recoverable.Status())
	verifier.AssertExpectations(t)
}

func TestPaymentReconciliationJob_Run_ListingFailurePropagates(t *testing.T) {
	ctx := t.Context()
	sweepRepo := new(MockSweepOrderRepository)
	sweepRepo.On("GetAllInCreatedStatus", ctx).
		Return(nil, errors.New("connection refused")).Once()

	job := newSweepJob(sweepRepo, new(MockSweepVerifier), new(MockSweepUoWFactory))
	err := job.Run(ctx)

	require.Error(t, err)
}
