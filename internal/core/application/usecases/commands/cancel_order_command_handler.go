package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// CancelOrderCommandHandler handles order cancellations.
//
// Authorization guards:
//   - Customers may only cancel their own orders
//   - Staff may cancel any order on the customer's behalf (counter requests)
//   - Admins may cancel any order
//
// Cancellation is only accepted within order.CancellationWindow of creation
// and never from a terminal state.
type CancelOrderCommandHandler struct {
	orderRepo ports.OrderRepository
	publisher ports.EventPublisher
	clock     func() time.Time
}

// NewCancelOrderCommandHandler creates a handler for cancellation operations.
func NewCancelOrderCommandHandler(
	orderRepo ports.OrderRepository,
	publisher ports.EventPublisher,
	clock func() time.Time,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		orderRepo: orderRepo,
		publisher: publisher,
		clock:     clock,
	}
}

// Handle processes the cancellation command. The status write is conditional
// on the status read, with a bounded re-read on conflict, so a cancellation
// racing a kitchen transition resolves to exactly one winner.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= casRetries; attempt++ {
		aggregate, err := h.orderRepo.Get(ctx, cmd.OrderID())
		if err != nil {
			return nil, err
		}

		switch cmd.Actor().Role() {
		case RoleCustomer:
			if !aggregate.BelongsTo(cmd.Actor().ID()) {
				return nil, fmt.Errorf("%w: order belongs to another customer", ErrForbidden)
			}
		case RoleStaff, RoleAdmin:
		}

		expected := aggregate.Status()
		if err := aggregate.Cancel(h.clock()); err != nil {
			return nil, err
		}

		err = h.orderRepo.CompareAndSetStatus(ctx, aggregate.ID(), expected, order.Cancelled, nil)
		if errors.Is(err, ports.ErrConflict) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		h.publisher.Publish(ctx, ports.Event{
			Kind:    ports.EventOrderUpdated,
			Order:   aggregate,
			Message: "Order cancelled",
		})
		return aggregate, nil
	}

	return nil, lastErr
}
