package commands

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// ClearHistoryCommandHandler removes billed and cancelled orders from the
// store. Active lifecycle orders (pending through completed) are never
// touched.
type ClearHistoryCommandHandler struct {
	orderRepo ports.OrderRepository
}

// NewClearHistoryCommandHandler creates a handler for history purge operations.
func NewClearHistoryCommandHandler(orderRepo ports.OrderRepository) ClearHistoryCommandHandler {
	return ClearHistoryCommandHandler{orderRepo: orderRepo}
}

// Handle processes the purge command and returns how many orders were removed.
func (h ClearHistoryCommandHandler) Handle(ctx context.Context, cmd ClearHistoryCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	return h.orderRepo.DeleteByStatuses(ctx, order.Billed, order.Cancelled)
}
