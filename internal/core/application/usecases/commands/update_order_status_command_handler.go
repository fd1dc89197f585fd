package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// casRetries bounds how many times a handler re-reads an order after its
// conditional status write lost to a concurrent transition.
const casRetries = 3

// UpdateOrderStatusCommandHandler handles lifecycle transitions requested by
// kitchen staff and admins.
//
// Authorization guards:
//   - Customers cannot update statuses (they cancel instead)
//   - Staff may only update orders assigned to them
//   - Admins may update any order
//
// Requesting the order's current status is a deliberate no-op: the handler
// returns the unchanged order and publishes nothing, so repeated submissions
// of the same transition are idempotent.
type UpdateOrderStatusCommandHandler struct {
	orderRepo ports.OrderRepository
	publisher ports.EventPublisher
	clock     func() time.Time
}

// NewUpdateOrderStatusCommandHandler creates a handler for status update operations.
func NewUpdateOrderStatusCommandHandler(
	orderRepo ports.OrderRepository,
	publisher ports.EventPublisher,
	clock func() time.Time,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		orderRepo: orderRepo,
		publisher: publisher,
		clock:     clock,
	}
}

// Handle processes the status update command.
//
// The write is conditional on the status the handler read: when a concurrent
// transition wins the race, the handler re-reads and re-applies the guards
// against fresh state, a bounded number of times. Exactly one of the racing
// updates wins any single transition edge.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
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
			return nil, fmt.Errorf("%w: customers cannot update order status", ErrForbidden)
		case RoleStaff:
			if !aggregate.IsAssignedTo(cmd.Actor().ID()) {
				return nil, fmt.Errorf("%w: order is not assigned to this staff member", ErrForbidden)
			}
		case RoleAdmin:
		}

		expected := aggregate.Status()
		if expected == cmd.NextStatus() {
			return aggregate, nil
		}

		if err := aggregate.ChangeStatus(cmd.NextStatus(), h.clock()); err != nil {
			return nil, err
		}

		err = h.orderRepo.CompareAndSetStatus(ctx, aggregate.ID(), expected, aggregate.Status(), aggregate.CompletedAt())
		if errors.Is(err, ports.ErrConflict) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}

		// The publish is not serialized with the commit: two transitions of
		// the same order racing through here can emit in reverse commit
		// order. Events carry the full snapshot, so subscribers reconcile on
		// state, not on arrival order.
		h.publisher.Publish(ctx, ports.Event{
			Kind:    ports.EventOrderUpdated,
			Order:   aggregate,
			Message: fmt.Sprintf("Order status updated to %s", aggregate.Status()),
		})
		return aggregate, nil
	}

	return nil, lastErr
}
