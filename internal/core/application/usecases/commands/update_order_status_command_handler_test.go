package commands_test

import (
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatusCommandHandler_Handle_StaffMovesOwnOrder(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	staffID := kernel.NewUUID()
	actor, _ := commands.NewActor(staffID, commands.RoleStaff)
	aggregate := restoreTestOrder(t, kernel.NewUUID(), "diner@example.com",
		order.Preparing, &staffID, now.Add(-10*time.Minute), nil)
	cmd, _ := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Ready, actor)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("CompareAndSetStatus", ctx, aggregate.ID(), order.Preparing, order.Ready, (*time.Time)(nil)).
			Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("ports.Event")).Return().Once(),
	)

	handler := commands.NewUpdateOrderStatusCommandHandler(orderRepo, publisher, fixedClock(now))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Ready, updated.Status())

	event := publisher.Calls[0].Arguments[1].(ports.Event)
	assert.Equal(t, ports.EventOrderUpdated, event.Kind)
	assert.Contains(t, event.Message, "ready")

	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_CompletedRecordsTimestamp(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	staffID := kernel.NewUUID()
	actor, _ := commands.NewActor(staffID, commands.RoleStaff)
	aggregate := restoreTestOrder(t, kernel.NewUUID(), "diner@example.com",
		order.Ready, &staffID, now.Add(-30*time.Minute), nil)
	cmd, _ := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Completed, actor)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("CompareAndSetStatus", ctx, aggregate.ID(), order.Ready, order.Completed, &now).
		Return(nil).Once()
	publisher.On("Publish", ctx, mock.AnythingOfType("ports.Event")).Return().Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(orderRepo, publisher, fixedClock(now))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Completed, updated.Status())
	require.NotNil(t, updated.CompletedAt())
	assert.Equal(t, now, *updated.CompletedAt())
	orderRepo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_SameStatusIsNoOp(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	staffID := kernel.NewUUID()
	actor, _ := commands.NewActor(staffID, commands.RoleStaff)
	aggregate := restoreTestOrder(t, kernel.NewUUID(), "diner@example.com",
		order.Preparing, &staffID, now, nil)
	cmd, _ := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Preparing, actor)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(orderRepo, publisher, fixedClock(now))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Preparing, updated.Status())
	orderRepo.AssertNotCalled(t, "CompareAndSetStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_StaffCannotTouchForeignOrder(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	assignee := kernel.NewUUID()
	intruder, _ := commands.NewActor(kernel.NewUUID(), commands.RoleStaff)
	aggregate := restoreTestOrder(t, kernel.NewUUID(), "diner@example.com",
		order.Preparing, &assignee, now, nil)
	cmd, _ := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Ready, intruder)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(orderRepo, publisher, fixedClock(now))
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrForbidden)
	orderRepo.AssertNotCalled(t, "CompareAndSetStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_CustomerIsForbidden(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	staffID := kernel.NewUUID()
	customer, _ := commands.NewActor(kernel.NewUUID(), commands.RoleCustomer)
	aggregate := restoreTestOrder(t, kernel.NewUUID(), "diner@example.com",
		order.Preparing, &staffID, now, nil)
	cmd, _ := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Ready, customer)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(orderRepo, publisher, fixedClock(now))
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrForbidden)
}

func TestUpdateOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	admin, _ := commands.NewActor(kernel.NewUUID(), commands.RoleAdmin)
	aggregate := restoreTestOrder(t, kernel.NewUUID(), "diner@example.com",
		order.Cancelled, nil, now, nil)
	cmd, _ := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Preparing, admin)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(orderRepo, publisher, fixedClock(now))
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_ReadyNeedsAssignedStaff(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	admin, _ := commands.NewActor(kernel.NewUUID(), commands.RoleAdmin)
	aggregate := restoreTestOrder(t, kernel.NewUUID(), "diner@example.com",
		order.Pending, nil, now, nil)
	cmd, _ := commands.NewUpdateOrderStatusCommand(aggregate.ID(), order.Ready, admin)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(orderRepo, publisher, fixedClock(now))
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
}

func TestUpdateOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()

	admin, _ := commands.NewActor(kernel.NewUUID(), commands.RoleAdmin)
	orderID := kernel.NewUUID()
	cmd, _ := commands.NewUpdateOrderStatusCommand(orderID, order.Ready, admin)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	orderRepo.On("Get", ctx, orderID).
		Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(orderRepo, publisher, time.Now)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateOrderStatusCommandHandler_Handle_RereadsAfterConflict(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	staffID := kernel.NewUUID()
	actor, _ := commands.NewActor(staffID, commands.RoleStaff)

	// The first conditional write loses a race; the re-read shows the order
	// unchanged and the retry lands.
	firstRead := restoreTestOrder(t, kernel.NewUUID(), "diner@example.com",
		order.Preparing, &staffID, now.Add(-10*time.Minute), nil)
	cmd, _ := commands.NewUpdateOrderStatusCommand(firstRead.ID(), order.Ready, actor)

	secondRead, err := order.RestoreOrder(firstRead.ID(), firstRead.Number(),
		firstRead.CustomerID(), firstRead.CustomerEmail(), firstRead.Items(), "",
		order.Preparing, &staffID, firstRead.CreatedAt(), nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		orderRepo.On("Get", ctx, firstRead.ID()).Return(firstRead, nil).Once(),
		orderRepo.On("CompareAndSetStatus", ctx, firstRead.ID(), order.Preparing, order.Ready, (*time.Time)(nil)).
			Return(ports.ErrConflict).Once(),
		orderRepo.On("Get", ctx, firstRead.ID()).Return(secondRead, nil).Once(),
		orderRepo.On("CompareAndSetStatus", ctx, firstRead.ID(), order.Preparing, order.Ready, (*time.Time)(nil)).
			Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("ports.Event")).Return().Once(),
	)

	handler := commands.NewUpdateOrderStatusCommandHandler(orderRepo, publisher, fixedClock(now))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Ready, updated.Status())
	orderRepo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_GivesUpAfterRepeatedConflicts(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	staffID := kernel.NewUUID()
	actor, _ := commands.NewActor(staffID, commands.RoleStaff)
	orderID := kernel.NewUUID()
	cmd, _ := commands.NewUpdateOrderStatusCommand(orderID, order.Ready, actor)

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	orderRepo.On("Get", ctx, orderID).Return(
		restoreTestOrder(t, kernel.NewUUID(), "diner@example.com", order.Preparing, &staffID, now, nil), nil,
	).Times(4)
	orderRepo.On("CompareAndSetStatus", ctx, mock.AnythingOfType("kernel.UUID"), order.Preparing, order.Ready, (*time.Time)(nil)).
		Return(ports.ErrConflict).Times(4)

	handler := commands.NewUpdateOrderStatusCommandHandler(orderRepo, publisher, fixedClock(now))
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, ports.ErrConflict)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
