package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

func TestEventEnvelope(t *testing.T) {
	t.Run("should rebuild the full order on the receiving side", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), "Margherita", 2, 1250)
		require.NoError(t, err)
		createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
		aggregate, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), "diner@example.com",
			[]order.Item{item}, "no onions", createdAt)
		require.NoError(t, err)
		staffID := kernel.NewUUID()
		require.NoError(t, aggregate.Assign(staffID))

		payload, err := encodeEvent("instance-1", ports.Event{
			Kind:    ports.EventOrderAssigned,
			Order:   aggregate,
			Message: "New order assigned to you",
		})
		require.NoError(t, err)

		origin, event, err := decodeEvent(payload)
		require.NoError(t, err)

		assert.Equal(t, "instance-1", origin)
		assert.Equal(t, ports.EventOrderAssigned, event.Kind)
		assert.Equal(t, "New order assigned to you", event.Message)
		require.NotNil(t, event.Order)
		assert.Equal(t, aggregate.ID(), event.Order.ID())
		assert.Equal(t, aggregate.Number(), event.Order.Number())
		assert.Equal(t, order.Preparing, event.Order.Status())
		require.NotNil(t, event.Order.AssignedStaff())
		assert.True(t, staffID.IsEqual(*event.Order.AssignedStaff()))
		assert.Equal(t, int64(2500), event.Order.TotalCents())
		assert.True(t, createdAt.Equal(event.Order.CreatedAt()))
	})

	t.Run("should pass events without an order snapshot through unchanged", func(t *testing.T) {
		payload, err := encodeEvent("instance-2", ports.Event{Kind: ports.EventNewOrder, Message: "New order received"})
		require.NoError(t, err)

		origin, event, err := decodeEvent(payload)
		require.NoError(t, err)
		assert.Equal(t, "instance-2", origin)
		assert.Nil(t, event.Order)
	})

	t.Run("should reject a corrupt payload", func(t *testing.T) {
		_, _, err := decodeEvent([]byte("{not json"))
		assert.Error(t, err)
	})
}
