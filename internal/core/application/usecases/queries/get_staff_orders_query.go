package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrGetStaffOrdersQueryIsNotConstructed = errors.New(
	"GetStaffOrdersQuery must be created via NewGetStaffOrdersQuery constructor",
)

// GetStaffOrdersQuery retrieves a staff member's active workload: the orders
// assigned to them that still need kitchen attention (preparing or ready).
type GetStaffOrdersQuery struct {
	staffID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStaffOrdersQuery creates a query for one staff member's active orders.
func NewGetStaffOrdersQuery(staffID kernel.UUID) (GetStaffOrdersQuery, error) {
	if err := staffID.Validate(); err != nil {
		return GetStaffOrdersQuery{}, err
	}

	return GetStaffOrdersQuery{
		staffID: staffID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStaffOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStaffOrdersQueryIsNotConstructed)
}

// StaffID returns the staff member whose workload is requested.
func (q GetStaffOrdersQuery) StaffID() kernel.UUID {
	return q.staffID
}
