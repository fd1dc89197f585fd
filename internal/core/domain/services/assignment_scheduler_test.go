package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Margherita", 1, 1250)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "diner@example.com",
		[]order.Item{item}, "", time.Now())
	require.NoError(t, err)
	return o
}

func TestAssignmentScheduler_AssignNext_NeverAssignedGoesFirst(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	fresh, _ := staff.NewStaff(kernel.NewUUID(), "Alice")
	veteranLast := now.Add(-10 * time.Minute)
	veteran, _ := staff.RestoreStaff(kernel.NewUUID(), "Bob", true, &veteranLast)

	directory := new(MockStaffDirectory)
	mock.InOrder(
		directory.On("ListEligible", ctx).Return([]*staff.Staff{fresh, veteran}, nil).Once(),
		directory.On("TouchAssigned", ctx, fresh.ID(), (*time.Time)(nil), now).Return(nil).Once(),
	)

	scheduler, err := services.NewAssignmentScheduler(directory)
	require.NoError(t, err)

	testOrder := newPendingOrder(t)
	assigned, err := scheduler.AssignNext(ctx, testOrder, now)

	require.NoError(t, err)
	assert.True(t, fresh.ID().IsEqual(assigned.ID()))
	assert.Equal(t, order.Preparing, testOrder.Status())
	require.NotNil(t, testOrder.AssignedStaff())
	assert.True(t, fresh.ID().IsEqual(*testOrder.AssignedStaff()))
	require.NotNil(t, assigned.LastAssignedAt())
	assert.Equal(t, now, *assigned.LastAssignedAt())
	directory.AssertExpectations(t)
}

func TestAssignmentScheduler_AssignNext_PicksLeastRecentlyAssigned(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	oldest := now.Add(-30 * time.Minute)
	recent := now.Add(-10 * time.Minute)
	first, _ := staff.RestoreStaff(kernel.NewUUID(), "Alice", true, &oldest)
	second, _ := staff.RestoreStaff(kernel.NewUUID(), "Bob", true, &recent)

	directory := new(MockStaffDirectory)
	mock.InOrder(
		directory.On("ListEligible", ctx).Return([]*staff.Staff{first, second}, nil).Once(),
		directory.On("TouchAssigned", ctx, first.ID(), &oldest, now).Return(nil).Once(),
	)

	scheduler, _ := services.NewAssignmentScheduler(directory)
	testOrder := newPendingOrder(t)

	assigned, err := scheduler.AssignNext(ctx, testOrder, now)

	require.NoError(t, err)
	assert.True(t, first.ID().IsEqual(assigned.ID()))
	directory.AssertExpectations(t)
}

func TestAssignmentScheduler_AssignNext_NoEligibleStaff(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	directory := new(MockStaffDirectory)
	directory.On("ListEligible", ctx).Return([]*staff.Staff{}, nil).Once()

	scheduler, _ := services.NewAssignmentScheduler(directory)
	testOrder := newPendingOrder(t)

	assigned, err := scheduler.AssignNext(ctx, testOrder, now)

	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrNoEligibleStaff)
	assert.Nil(t, assigned)
	assert.Equal(t, order.Pending, testOrder.Status())
	assert.Nil(t, testOrder.AssignedStaff())
	directory.AssertNotCalled(t, "TouchAssigned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignmentScheduler_AssignNext_RereadsAfterLosingRace(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	// Both schedulers read Alice as least recently assigned; the other one
	// touches her first, so this one must fall back to Bob on re-read.
	aliceLast := now.Add(-30 * time.Minute)
	bobLast := now.Add(-10 * time.Minute)
	alice, _ := staff.RestoreStaff(kernel.NewUUID(), "Alice", true, &aliceLast)
	bob, _ := staff.RestoreStaff(kernel.NewUUID(), "Bob", true, &bobLast)
	aliceTouched, _ := staff.RestoreStaff(alice.ID(), "Alice", true, &now)

	directory := new(MockStaffDirectory)
	mock.InOrder(
		directory.On("ListEligible", ctx).Return([]*staff.Staff{alice, bob}, nil).Once(),
		directory.On("TouchAssigned", ctx, alice.ID(), &aliceLast, now).Return(ports.ErrConflict).Once(),
		directory.On("ListEligible", ctx).Return([]*staff.Staff{bob, aliceTouched}, nil).Once(),
		directory.On("TouchAssigned", ctx, bob.ID(), &bobLast, now).Return(nil).Once(),
	)

	scheduler, _ := services.NewAssignmentScheduler(directory)
	testOrder := newPendingOrder(t)

	assigned, err := scheduler.AssignNext(ctx, testOrder, now)

	require.NoError(t, err)
	assert.True(t, bob.ID().IsEqual(assigned.ID()))
	require.NotNil(t, testOrder.AssignedStaff())
	assert.True(t, bob.ID().IsEqual(*testOrder.AssignedStaff()))
	directory.AssertExpectations(t)
}

func TestAssignmentScheduler_AssignNext_GivesUpAfterRepeatedConflicts(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	last := now.Add(-30 * time.Minute)
	alice, _ := staff.RestoreStaff(kernel.NewUUID(), "Alice", true, &last)

	directory := new(MockStaffDirectory)
	directory.On("ListEligible", ctx).Return([]*staff.Staff{alice}, nil).Times(4)
	directory.On("TouchAssigned", ctx, alice.ID(), &last, now).Return(ports.ErrConflict).Times(4)

	scheduler, _ := services.NewAssignmentScheduler(directory)
	testOrder := newPendingOrder(t)

	assigned, err := scheduler.AssignNext(ctx, testOrder, now)

	require.Error(t, err)
	require.ErrorIs(t, err, ports.ErrConflict)
	assert.Nil(t, assigned)
	assert.Equal(t, order.Pending, testOrder.Status())
	directory.AssertExpectations(t)
}

func TestAssignmentScheduler_AssignNext_DirectoryError(t *testing.T) {
	ctx := t.Context()

	directory := new(MockStaffDirectory)
	directory.On("ListEligible", ctx).Return(nil, errors.New("database error")).Once()

	scheduler, _ := services.NewAssignmentScheduler(directory)
	testOrder := newPendingOrder(t)

	_, err := scheduler.AssignNext(ctx, testOrder, time.Now())

	require.Error(t, err)
	require.EqualError(t, err, "database error")
}

func TestAssignmentScheduler_AssignNext_InvalidOrder(t *testing.T) {
	ctx := t.Context()

	directory := new(MockStaffDirectory)
	scheduler, _ := services.NewAssignmentScheduler(directory)

	_, err := scheduler.AssignNext(ctx, &order.Order{}, time.Now())

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	directory.AssertNotCalled(t, "ListEligible", mock.Anything)
}

func TestNewAssignmentScheduler_RequiresDirectory(t *testing.T) {
	_, err := services.NewAssignmentScheduler(nil)
	require.Error(t, err)
}
