package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// CancellationWindow is the fixed period after creation during which a
// customer-initiated cancellation is permitted. The boundary is inclusive:
// cancelling exactly CancellationWindow after creation still succeeds.
const CancellationWindow = 5 * time.Minute

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrCancellationWindowExpired is returned when a cancellation request
	// arrives after the cancellation window has closed.
	ErrCancellationWindowExpired = errors.New("cancellation window expired")
)

// Order is the aggregate root for a restaurant order. It owns the lifecycle
// from creation through kitchen preparation to billing.
//
// Order maintains these invariants:
//   - The identifier, order number, customer identity, items, and creation time
//     are immutable after construction
//   - The total always equals the sum of quantity times snapshotted unit price
//   - Status transitions follow the state machine defined in status.go
//   - A staff member is assigned at most once, on the pending -> preparing edge
//   - completedAt is set exactly once, when the order becomes completed
//
// The struct uses private fields to enforce encapsulation; it can only be
// created through NewOrder (fresh orders) or RestoreOrder (persistence).
type Order struct {
	id            kernel.UUID
	number        string
	customerID    kernel.UUID
	customerEmail string
	items         []Item
	instructions  string
	status        Status
	staffID       *kernel.UUID
	createdAt     time.Time
	completedAt   *time.Time

	isConstructed bool
}

// NewOrder creates a new pending order with a freshly generated order number.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - customerID: Identifier of the ordering customer (must be a valid UUID)
//   - customerEmail: Customer email snapshot used as the billing identity (required)
//   - items: Price-snapshotted order lines (at least one, each built via NewItem)
//   - instructions: Optional free-text special instructions, no semantic effect
//   - createdAt: Creation timestamp anchoring the cancellation window
//
// The order starts in Pending status with no staff assigned; call Assign to
// move it to Preparing.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	customerEmail string,
	items []Item,
	instructions string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		instructions:  instructions,
		createdAt:     createdAt,
		number:        NewNumber(createdAt),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerID, customerEmail),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, validating that the
// stored state is internally consistent (valid status, staff assignment
// matching the status).
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	customerEmail string,
	items []Item,
	instructions string,
	status Status,
	staffID *kernel.UUID,
	createdAt time.Time,
	completedAt *time.Time,
) (*Order, error) {
	o := &Order{
		instructions:  instructions,
		createdAt:     createdAt,
		completedAt:   completedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerID, customerEmail),
		o.setItems(items),
		o.setNumber(number),
		o.setStatus(status, staffID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through one of its
// constructors. Call it before persisting aggregates that crossed an API
// boundary.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// CustomerID returns the identifier of the ordering customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// CustomerEmail returns the customer email snapshotted at creation.
// Billing consolidation matches on this value, case-insensitively.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Instructions returns the optional special instructions text.
func (o *Order) Instructions() string {
	return o.instructions
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// AssignedStaff returns the assigned staff member's ID, or nil when the order
// is unassigned.
func (o *Order) AssignedStaff() *kernel.UUID {
	return o.staffID
}

// CreatedAt returns the immutable creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// CompletedAt returns the completion timestamp, or nil if the order was never
// completed.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// TotalCents returns the order total in cents, recomputed from the items on
// every call. The total is never stored independently, so it cannot drift
// from the snapshots.
func (o *Order) TotalCents() int64 {
	var total int64
	for _, item := range o.items {
		total += item.SubtotalCents()
	}
	return total
}

// BelongsTo reports whether the order was placed by the given customer.
func (o *Order) BelongsTo(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// IsAssignedTo reports whether the given staff member is assigned to the order.
func (o *Order) IsAssignedTo(staffID kernel.UUID) bool {
	return o.staffID != nil && o.staffID.IsEqual(staffID)
}

// RegenerateNumber replaces the order number with a fresh one. Used by the
// creation workflow when an insert collides on the unique number constraint;
// it must not be called on persisted orders.
func (o *Order) RegenerateNumber(now time.Time) {
	o.number = NewNumber(now)
}

// Assign assigns the order to a staff member and moves it to Preparing.
//
// Rules:
//   - The staff ID must be valid
//   - The order must be in Pending status; a staff member is assigned at most
//     once, so reassignment is not permitted
func (o *Order) Assign(staffID kernel.UUID) error {
	if err := staffID.Validate(); err != nil {
		return err
	}

	if o.staffID != nil {
		return fmt.Errorf("%w: order is already assigned", ErrInvalidTransition)
	}

	newStatus, err := o.status.TransitionTo(Preparing)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.staffID = &staffID
	return nil
}

// ChangeStatus applies a lifecycle transition to the given status.
//
// Behavior:
//   - Requesting the current status is a no-op returning nil; the order is
//     deliberately left untouched so repeated updates are idempotent
//   - Ready and Completed require an assigned staff member
//   - Transitioning to Completed records completedAt exactly once, using now
//   - Any edge not in the state machine fails wrapping ErrInvalidTransition
func (o *Order) ChangeStatus(next Status, now time.Time) error {
	if next == o.status {
		return nil
	}

	if (next == Ready || next == Completed) && o.staffID == nil {
		return fmt.Errorf("%w: %s requires an assigned staff member", ErrInvalidTransition, next)
	}

	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	if newStatus == Completed && o.completedAt == nil {
		completedAt := now
		o.completedAt = &completedAt
	}
	return nil
}

// Cancel cancels the order on behalf of the customer.
//
// Rules:
//   - Completed, cancelled, and billed orders cannot be cancelled
//     (wraps ErrInvalidTransition)
//   - The request must arrive within CancellationWindow of creation;
//     the boundary itself is still inside the window
//     (fails with ErrCancellationWindowExpired)
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	if now.Sub(o.createdAt) > CancellationWindow {
		return ErrCancellationWindowExpired
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customerID kernel.UUID, customerEmail string) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(customerEmail) == "" {
		return errs.NewValueIsRequiredError("customerEmail")
	}
	o.customerID = customerID
	o.customerEmail = customerEmail
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.number = number
	return nil
}

func (o *Order) setStatus(status Status, staffID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if staffID != nil {
		if err := staffID.Validate(); err != nil {
			return err
		}
	}
	if err := status.ValidateCanHaveStaff(staffID != nil); err != nil {
		return err
	}
	o.status = status
	o.staffID = staffID
	return nil
}
