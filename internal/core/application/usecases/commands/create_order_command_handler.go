package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// ErrItemUnavailable is returned when a requested menu item does not exist or
// is currently unavailable. The whole creation aborts; no partial order is
// ever persisted.
var ErrItemUnavailable = errors.New("menu item is unavailable")

// numberRetries bounds how many fresh order numbers the handler tries after an
// insert collides on the unique number constraint. Collisions are recoverable
// and never surface to the caller.
const numberRetries = 3

// CreateOrderCommandHandler handles the business logic for order creation:
// catalog validation with price snapshotting, round-robin staff assignment,
// durable persistence, and lifecycle notifications.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(orderRepo, catalog, scheduler, publisher, time.Now)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrItemUnavailable) {
//	    // one of the requested items cannot be fulfilled
//	}
type CreateOrderCommandHandler struct {
	orderRepo ports.OrderRepository
	catalog   ports.CatalogGateway
	scheduler services.AssignmentScheduler
	publisher ports.EventPublisher
	clock     func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	orderRepo ports.OrderRepository,
	catalog ports.CatalogGateway,
	scheduler services.AssignmentScheduler,
	publisher ports.EventPublisher,
	clock func() time.Time,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		orderRepo: orderRepo,
		catalog:   catalog,
		scheduler: scheduler,
		publisher: publisher,
		clock:     clock,
	}
}

// Handle processes the order creation command.
//
// Workflow:
//  1. Resolve every line against the catalog; a missing or unavailable item
//     aborts the whole creation with ErrItemUnavailable
//  2. Snapshot name and unit price onto the order lines
//  3. Ask the scheduler for a staff member; with none eligible the order
//     simply stays pending and unassigned
//  4. Persist, regenerating the order number on a duplicate collision
//  5. Announce new-order to everyone and order-assigned to the staff room
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		catalogItem, err := h.catalog.GetItem(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, line.ItemID)
			}
			return nil, err
		}
		if !catalogItem.IsAvailable {
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, catalogItem.Name)
		}

		item, err := order.NewItem(catalogItem.ID, catalogItem.Name, line.Quantity, catalogItem.PriceCents)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	now := h.clock()
	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.CustomerID(),
		cmd.CustomerEmail(),
		items,
		cmd.Instructions(),
		now,
	)
	if err != nil {
		return nil, err
	}

	assignee, err := h.scheduler.AssignNext(ctx, newOrder, now)
	if err != nil && !errors.Is(err, services.ErrNoEligibleStaff) && !errors.Is(err, ports.ErrConflict) {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		err = h.orderRepo.Add(ctx, newOrder)
		if err == nil {
			break
		}
		if !errors.Is(err, ports.ErrDuplicateOrderNumber) || attempt >= numberRetries {
			return nil, err
		}
		newOrder.RegenerateNumber(h.clock())
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:    ports.EventNewOrder,
		Order:   newOrder,
		Message: "New order received",
	})
	if assignee != nil {
		h.publisher.PublishTo(ctx, ports.StaffRoom(assignee.ID()), ports.Event{
			Kind:    ports.EventOrderAssigned,
			Order:   newOrder,
			Message: "New order assigned to you",
		})
	}

	return newOrder, nil
}
