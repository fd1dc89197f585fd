package commands_test

import (
	"errors"
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearHistoryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewClearHistoryCommand()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("DeleteByStatuses", ctx, order.Billed, order.Cancelled).
		Return(int64(7), nil).Once()

	handler := commands.NewClearHistoryCommandHandler(orderRepo)
	deleted, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
	orderRepo.AssertExpectations(t)
}

func TestClearHistoryCommandHandler_Handle_RepositoryError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewClearHistoryCommand()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("DeleteByStatuses", ctx, order.Billed, order.Cancelled).
		Return(int64(0), errors.New("database error")).Once()

	handler := commands.NewClearHistoryCommandHandler(orderRepo)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
}

func TestClearHistoryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	handler := commands.NewClearHistoryCommandHandler(orderRepo)

	var cmd commands.ClearHistoryCommand
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrClearHistoryCommandIsNotConstructed)
}
