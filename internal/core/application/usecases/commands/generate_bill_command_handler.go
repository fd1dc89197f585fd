package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// ErrNoBillableOrders is returned when the customer has no completed orders to
// consolidate. This is a reportable outcome, not an internal failure.
var ErrNoBillableOrders = errors.New("no billable orders for this customer")

// GenerateBillCommandHandler consolidates a customer's completed orders into a
// single bill: every completed order whose email snapshot matches (case
// insensitive) is promoted to billed and returned. Billing deliberately emits
// no lifecycle event; it is a back-office operation, not kitchen flow.
type GenerateBillCommandHandler struct {
	orderRepo ports.OrderRepository
	clock     func() time.Time
}

// NewGenerateBillCommandHandler creates a handler for billing operations.
func NewGenerateBillCommandHandler(orderRepo ports.OrderRepository, clock func() time.Time) GenerateBillCommandHandler {
	return GenerateBillCommandHandler{orderRepo: orderRepo, clock: clock}
}

// Handle processes the billing command and returns the orders that were
// consolidated, already in billed status.
func (h GenerateBillCommandHandler) Handle(ctx context.Context, cmd GenerateBillCommand) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	completed, err := h.orderRepo.ListByStatus(ctx, order.Completed)
	if err != nil {
		return nil, err
	}

	billable := make([]*order.Order, 0, len(completed))
	ids := make([]kernel.UUID, 0, len(completed))
	for _, aggregate := range completed {
		if strings.EqualFold(aggregate.CustomerEmail(), cmd.CustomerEmail()) {
			billable = append(billable, aggregate)
			ids = append(ids, aggregate.ID())
		}
	}
	if len(billable) == 0 {
		return nil, ErrNoBillableOrders
	}

	if _, err := h.orderRepo.BulkSetStatus(ctx, ids, order.Billed); err != nil {
		return nil, err
	}

	now := h.clock()
	for _, aggregate := range billable {
		if err := aggregate.ChangeStatus(order.Billed, now); err != nil {
			return nil, err
		}
	}

	return billable, nil
}
