package queries

import (
	"context"

	"restaurant/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetStaffOrdersQueryHandler retrieves the orders assigned to a staff member
// that are still in the kitchen (preparing or ready). Completed and terminal
// orders drop off the staff view.
type GetStaffOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStaffOrdersQueryHandler creates a handler for staff workload queries.
func NewGetStaffOrdersQueryHandler(db *gorm.DB) GetStaffOrdersQueryHandler {
	return GetStaffOrdersQueryHandler{db: db}
}

// Handle executes the query for the staff member's active orders.
func (h GetStaffOrdersQueryHandler) Handle(ctx context.Context, query GetStaffOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return fetchOrderViews(ctx, h.db,
		"staff_id = ? AND status IN ?",
		query.StaffID().Bytes(), []int{int(order.Preparing), int(order.Ready)})
}
