package eventbus

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"restaurant/internal/core/ports"
)

// channelPrefix namespaces the Redis pub/sub channels carrying lifecycle
// events. The room name is the channel suffix.
const channelPrefix = "orders.events."

// RedisBridge extends the in-process Hub across API instances via Redis
// pub/sub. Outbound events go to the local hub and to Redis; inbound messages
// from other instances are re-injected into the local hub. Each bridge tags
// its messages with a random origin ID so it can skip its own.
//
// Relay failures are logged and dropped, matching the at-most-once contract
// of ports.EventPublisher.
type RedisBridge struct {
	hub    *Hub
	client *redis.Client
	origin string
	logger *slog.Logger
}

// NewRedisBridge creates a bridge around the given hub and Redis client.
func NewRedisBridge(hub *Hub, client *redis.Client, logger *slog.Logger) *RedisBridge {
	return &RedisBridge{
		hub:    hub,
		client: client,
		origin: uuid.NewString(),
		logger: logger.With("component", "eventbus.redis"),
	}
}

// Start subscribes to the event channels of all rooms and relays inbound
// messages into the local hub until the context is cancelled. It returns once
// the subscription is confirmed; relaying continues in the background.
func (b *RedisBridge) Start(ctx context.Context) error {
	pubsub := b.client.PSubscribe(ctx, channelPrefix+"*")
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return err
	}

	go func() {
		defer pubsub.Close()
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				b.handle(ctx, msg)
			}
		}
	}()

	return nil
}

// Publish delivers the event to every local subscriber and relays it to the
// other instances' all-rooms feed.
func (b *RedisBridge) Publish(ctx context.Context, event ports.Event) {
	b.hub.Publish(ctx, event)
	b.relay(ctx, ports.RoomAll, event)
}

// PublishTo delivers the event to local subscribers of the room and relays it
// to the same room on the other instances.
func (b *RedisBridge) PublishTo(ctx context.Context, room string, event ports.Event) {
	b.hub.PublishTo(ctx, room, event)
	b.relay(ctx, room, event)
}

func (b *RedisBridge) relay(ctx context.Context, room string, event ports.Event) {
	payload, err := encodeEvent(b.origin, event)
	if err != nil {
		b.logger.Error("encoding event for relay", "kind", event.Kind, "error", err)
		return
	}

	if err := b.client.Publish(ctx, channelPrefix+room, payload).Err(); err != nil {
		b.logger.Error("relaying event to redis", "kind", event.Kind, "room", room, "error", err)
	}
}

func (b *RedisBridge) handle(ctx context.Context, msg *redis.Message) {
	origin, event, err := decodeEvent([]byte(msg.Payload))
	if err != nil {
		b.logger.Error("decoding relayed event", "channel", msg.Channel, "error", err)
		return
	}
	if origin == b.origin {
		return
	}

	room := strings.TrimPrefix(msg.Channel, channelPrefix)
	if room == ports.RoomAll {
		b.hub.Publish(ctx, event)
		return
	}
	b.hub.PublishTo(ctx, room, event)
}
