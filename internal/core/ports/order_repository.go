// Package ports defines the boundary contracts the order orchestration core
// consumes: the order store, the staff directory, the catalog gateway, and the
// event broadcaster. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

var (
	// ErrDuplicateOrderNumber is returned by Add when the generated order
	// number collides with an existing one. Callers retry internally with a
	// fresh number; the error never reaches API clients.
	ErrDuplicateOrderNumber = errors.New("duplicate order number")

	// ErrConflict is returned by conditional writes when the record changed
	// since it was read. Callers should re-read current state and retry.
	ErrConflict = errors.New("concurrent modification conflict")
)

// OrderRepository is the persistence contract for order aggregates — the
// durable source of truth for the lifecycle. Per-record atomicity is part of
// the contract: Add is all-or-nothing and CompareAndSetStatus only writes when
// the persisted status still matches the one the caller read.
type OrderRepository interface {
	// Add persists a new order atomically. Fails with ErrDuplicateOrderNumber
	// when the order number is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-readable order number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// ListByCustomer retrieves all orders placed by a customer, newest first.
	ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// ListByStatus retrieves all orders in any of the given statuses,
	// newest first.
	ListByStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error)

	// ListAssignedTo retrieves the orders assigned to a staff member that are
	// in any of the given statuses, newest first.
	ListAssignedTo(ctx context.Context, staffID kernel.UUID, statuses ...order.Status) ([]*order.Order, error)

	// CompareAndSetStatus conditionally moves an order from expected to next,
	// writing completedAt when non-nil. Fails with ErrConflict when the
	// persisted status no longer equals expected, or a not-found error when
	// the order does not exist.
	CompareAndSetStatus(ctx context.Context, id kernel.UUID, expected, next order.Status, completedAt *time.Time) error

	// BulkSetStatus unconditionally sets the status of the given orders.
	// Returns the number of updated records.
	BulkSetStatus(ctx context.Context, ids []kernel.UUID, status order.Status) (int64, error)

	// DeleteByStatuses removes every order in any of the given statuses.
	// Returns the number of deleted records.
	DeleteByStatuses(ctx context.Context, statuses ...order.Status) (int64, error)
}
