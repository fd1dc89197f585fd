// Package eventbus provides the lifecycle notification fan-out: an in-process
// hub with socket.io-style rooms, and an optional Redis bridge that lets
// several API instances share one room space.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"restaurant/internal/core/ports"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls this far behind starts losing events; delivery is at most once and a
// reconnecting client re-reads current state anyway.
const subscriberBuffer = 16

// Hub is the in-process event broadcaster. Subscribers join rooms; Publish
// reaches every subscriber, PublishTo only the given room. Sends never block:
// a full subscriber buffer drops the event for that subscriber.
//
// Sends happen under the read lock and channel close under the write lock, so
// a broadcast can never race a cancellation into a send on a closed channel.
type Hub struct {
	logger *slog.Logger

	mu     sync.RWMutex
	nextID int
	rooms  map[string]map[int]chan ports.Event
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "eventbus"),
		rooms:  make(map[string]map[int]chan ports.Event),
	}
}

// Subscribe joins a room and returns the receive channel plus a cancel
// function. Cancel is idempotent; it leaves the room and closes the channel.
// An empty room name joins the implicit all-events room.
func (h *Hub) Subscribe(room string) (<-chan ports.Event, func()) {
	if room == "" {
		room = ports.RoomAll
	}

	ch := make(chan ports.Event, subscriberBuffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[int]chan ports.Event)
	}
	h.rooms[room][id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.rooms[room], id)
			if len(h.rooms[room]) == 0 {
				delete(h.rooms, room)
			}
			close(ch)
			h.mu.Unlock()
		})
	}

	return ch, cancel
}

// Publish delivers the event to every connected subscriber in every room.
func (h *Hub) Publish(ctx context.Context, event ports.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, subscribers := range h.rooms {
		for _, ch := range subscribers {
			h.send(ch, event)
		}
	}
}

// PublishTo delivers the event only to subscribers of the given room.
func (h *Hub) PublishTo(ctx context.Context, room string, event ports.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.rooms[room] {
		h.send(ch, event)
	}
}

func (h *Hub) send(ch chan ports.Event, event ports.Event) {
	select {
	case ch <- event:
	default:
		h.logger.Debug("dropping event for slow subscriber", "kind", event.Kind)
	}
}
