package commands_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error) {
	callArgs := make([]any, 0, len(statuses)+1)
	callArgs = append(callArgs, ctx)
	for _, s := range statuses {
		callArgs = append(callArgs, s)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAssignedTo(ctx context.Context, staffID kernel.UUID, statuses ...order.Status) ([]*order.Order, error) {
	callArgs := make([]any, 0, len(statuses)+2)
	callArgs = append(callArgs, ctx, staffID)
	for _, s := range statuses {
		callArgs = append(callArgs, s)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CompareAndSetStatus(
	ctx context.Context,
	id kernel.UUID,
	expected, next order.Status,
	completedAt *time.Time,
) error {
	args := m.Called(ctx, id, expected, next, completedAt)
	return args.Error(0)
}

func (m *MockOrderRepository) BulkSetStatus(ctx context.Context, ids []kernel.UUID, status order.Status) (int64, error) {
	args := m.Called(ctx, ids, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) DeleteByStatuses(ctx context.Context, statuses ...order.Status) (int64, error) {
	callArgs := make([]any, 0, len(statuses)+1)
	callArgs = append(callArgs, ctx)
	for _, s := range statuses {
		callArgs = append(callArgs, s)
	}
	args := m.Called(callArgs...)
	return args.Get(0).(int64), args.Error(1)
}

type MockCatalogGateway struct{ mock.Mock }

func (m *MockCatalogGateway) GetItem(ctx context.Context, id kernel.UUID) (ports.CatalogItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.CatalogItem), args.Error(1)
}

type MockStaffDirectory struct{ mock.Mock }

func (m *MockStaffDirectory) ListEligible(ctx context.Context) ([]*staff.Staff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staff.Staff), args.Error(1)
}

func (m *MockStaffDirectory) TouchAssigned(ctx context.Context, id kernel.UUID, expected *time.Time, now time.Time) error {
	args := m.Called(ctx, id, expected, now)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.Event) {
	m.Called(ctx, event)
}

func (m *MockEventPublisher) PublishTo(ctx context.Context, room string, event ports.Event) {
	m.Called(ctx, room, event)
}

// restoreTestOrder rebuilds an order in the given state for handler tests.
func restoreTestOrder(
	t *testing.T,
	customerID kernel.UUID,
	email string,
	status order.Status,
	staffID *kernel.UUID,
	createdAt time.Time,
	completedAt *time.Time,
) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), "Margherita", 2, 1250)
	require.NoError(t, err)

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(),
		order.NewNumber(createdAt),
		customerID,
		email,
		[]order.Item{item},
		"",
		status,
		staffID,
		createdAt,
		completedAt,
	)
	require.NoError(t, err)
	return aggregate
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
