package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery retrieves every order, optionally narrowed to a single
// status. The billed-history view is this query with the billed status filter.
type GetAllOrdersQuery struct {
	statusFilter *order.Status

	guard guard.ConstructorGuard
}

// NewGetAllOrdersQuery creates a query retrieving all orders, newest first.
func NewGetAllOrdersQuery() GetAllOrdersQuery {
	return GetAllOrdersQuery{guard: guard.NewConstructorGuard()}
}

// NewGetAllOrdersQueryWithStatus creates a query retrieving only orders in the
// given status.
func NewGetAllOrdersQueryWithStatus(status order.Status) (GetAllOrdersQuery, error) {
	if err := status.Validate(); err != nil {
		return GetAllOrdersQuery{}, err
	}

	return GetAllOrdersQuery{
		statusFilter: &status,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

// StatusFilter returns the status restriction, or nil for all orders.
func (q GetAllOrdersQuery) StatusFilter() *order.Status {
	return q.statusFilter
}
