package ports

import (
	"context"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// RoomAll is the implicit room every subscriber belongs to. Events published
// with Publish reach it regardless of which named room a subscriber joined.
const RoomAll = "all"

// StaffRoom returns the room name a staff member's clients join to receive
// assignment notifications.
func StaffRoom(staffID kernel.UUID) string {
	return fmt.Sprintf("staff-%s", staffID)
}

// CustomerRoom returns the room name a customer's clients join.
func CustomerRoom(customerID kernel.UUID) string {
	return fmt.Sprintf("customer-%s", customerID)
}

// EventKind identifies the kind of lifecycle notification.
type EventKind string

const (
	// EventNewOrder announces a freshly created order to everyone.
	EventNewOrder EventKind = "new-order"
	// EventOrderAssigned tells a staff member's room a new order was routed
	// to them.
	EventOrderAssigned EventKind = "order-assigned"
	// EventOrderUpdated announces a lifecycle transition (status change or
	// cancellation) to everyone.
	EventOrderUpdated EventKind = "order-updated"
)

// Event is a lifecycle notification carrying the order snapshot as of the
// transition plus a human-readable message.
type Event struct {
	Kind    EventKind
	Order   *order.Order
	Message string
}

// EventPublisher is the fire-and-forget outbound contract for lifecycle
// notifications. Delivery is best-effort at most once per subscriber: no
// persistence, no replay, no acknowledgements — which is why the methods
// return no error. Failures are the broadcaster's to log, never the
// caller's to handle, and must not affect command outcomes.
type EventPublisher interface {
	// Publish delivers the event to every connected subscriber.
	Publish(ctx context.Context, event Event)

	// PublishTo delivers the event only to subscribers of the given room.
	PublishTo(ctx context.Context, room string, event Event)
}

// EventSubscriber is the inbound side of the broadcaster, used by the
// streaming transport to attach clients to rooms.
type EventSubscriber interface {
	// Subscribe joins a room and returns a receive channel plus a cancel
	// function that leaves the room and closes the channel. Passing RoomAll
	// (or "") joins only the implicit all-events feed; a named room receives
	// its own events in addition to broadcast ones.
	Subscribe(room string) (<-chan Event, func())
}
