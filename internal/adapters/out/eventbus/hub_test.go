package eventbus

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/core/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func receive(t *testing.T, ch <-chan ports.Event) ports.Event {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return ports.Event{}
	}
}

func assertNoEvent(t *testing.T, ch <-chan ports.Event) {
	t.Helper()
	select {
	case event := <-ch:
		t.Fatalf("unexpected event: %s", event.Kind)
	default:
	}
}

func TestHub_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("should reach subscribers in every room", func(t *testing.T) {
		hub := NewHub(testLogger())
		all, cancelAll := hub.Subscribe(ports.RoomAll)
		defer cancelAll()
		kitchen, cancelKitchen := hub.Subscribe("staff-kitchen")
		defer cancelKitchen()

		hub.Publish(ctx, ports.Event{Kind: ports.EventNewOrder, Message: "New order received"})

		assert.Equal(t, ports.EventNewOrder, receive(t, all).Kind)
		assert.Equal(t, ports.EventNewOrder, receive(t, kitchen).Kind)
	})

	t.Run("should drop events for a subscriber with a full buffer", func(t *testing.T) {
		hub := NewHub(testLogger())
		slow, cancel := hub.Subscribe(ports.RoomAll)
		defer cancel()

		for i := 0; i < subscriberBuffer+5; i++ {
			hub.Publish(ctx, ports.Event{Kind: ports.EventOrderUpdated})
		}

		received := 0
		for {
			select {
			case <-slow:
				received++
				continue
			default:
			}
			break
		}
		assert.Equal(t, subscriberBuffer, received)
	})
}

func TestHub_PublishTo(t *testing.T) {
	ctx := context.Background()

	t.Run("should only reach the targeted room", func(t *testing.T) {
		hub := NewHub(testLogger())
		mine, cancelMine := hub.Subscribe("staff-a")
		defer cancelMine()
		other, cancelOther := hub.Subscribe("staff-b")
		defer cancelOther()

		hub.PublishTo(ctx, "staff-a", ports.Event{Kind: ports.EventOrderAssigned, Message: "New order assigned to you"})

		event := receive(t, mine)
		assert.Equal(t, ports.EventOrderAssigned, event.Kind)
		assert.Equal(t, "New order assigned to you", event.Message)
		assertNoEvent(t, other)
	})

	t.Run("should be a no-op for a room with no subscribers", func(t *testing.T) {
		hub := NewHub(testLogger())

		assert.NotPanics(t, func() {
			hub.PublishTo(ctx, "staff-nobody", ports.Event{Kind: ports.EventOrderAssigned})
		})
	})
}

func TestHub_Subscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("should treat an empty room name as the all room", func(t *testing.T) {
		hub := NewHub(testLogger())
		ch, cancel := hub.Subscribe("")
		defer cancel()

		hub.PublishTo(ctx, ports.RoomAll, ports.Event{Kind: ports.EventNewOrder})

		assert.Equal(t, ports.EventNewOrder, receive(t, ch).Kind)
	})

	t.Run("should stop delivery and close the channel on cancel", func(t *testing.T) {
		hub := NewHub(testLogger())
		ch, cancel := hub.Subscribe("customer-x")

		cancel()
		hub.PublishTo(ctx, "customer-x", ports.Event{Kind: ports.EventOrderUpdated})

		_, open := <-ch
		require.False(t, open)
	})

	t.Run("should tolerate cancel being called twice", func(t *testing.T) {
		hub := NewHub(testLogger())
		_, cancel := hub.Subscribe("customer-x")

		cancel()
		assert.NotPanics(t, cancel)
	})

	t.Run("should survive churn concurrent with publishing", func(t *testing.T) {
		hub := NewHub(testLogger())

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					ch, cancel := hub.Subscribe("staff-busy")
					select {
					case <-ch:
					default:
					}
					cancel()
				}
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				hub.Publish(ctx, ports.Event{Kind: ports.EventOrderUpdated})
				hub.PublishTo(ctx, "staff-busy", ports.Event{Kind: ports.EventOrderAssigned})
			}
		}()
		wg.Wait()
	})
}
