package commands_test

import (
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand(t *testing.T) {
	actor, _ := commands.NewActor(kernel.NewUUID(), commands.RoleCustomer)

	t.Run("should create valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		cmd, err := commands.NewCancelOrderCommand(orderID, actor)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.True(t, orderID.IsEqual(cmd.OrderID()))
		assert.Equal(t, actor, cmd.Actor())
	})

	t.Run("should reject invalid order id", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(kernel.UUID{}, actor)
		require.Error(t, err)
	})

	t.Run("should reject unconstructed actor", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), commands.Actor{})
		require.Error(t, err)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.CancelOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
	})
}
