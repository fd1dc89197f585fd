package order

import (
	"errors"
	"fmt"

	"restaurant/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a requested status change is not
// reachable from the order's current status. Match with errors.Is.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct kitchen workflow.
//
// State transitions:
//
//	Pending ──┬──> Preparing ──> Ready ──> Completed ──> Billed
//	          │        │           │
//	          └────────┴───────────┴──> Cancelled
//
// Pending may also move directly to Ready, but only for orders that carry an
// assigned staff member. Cancelled and Billed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when no staff member was available at
	// creation time. Pending orders wait for a staff assignment.
	Pending

	// Preparing indicates the order has been assigned to a staff member
	// and is being worked on in the kitchen.
	Preparing

	// Ready indicates the assigned staff member has finished preparation
	// and the order awaits pickup or serving.
	Ready

	// Completed indicates the order was served. Completed orders remain
	// visible until billing consolidation promotes them to Billed.
	Completed

	// Cancelled indicates the customer cancelled within the cancellation
	// window. Terminal.
	Cancelled

	// Billed indicates the order was consolidated into a bill. Terminal.
	Billed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		Completed: "completed",
		Cancelled: "cancelled",
		Billed:    "billed",
	}
}

// validNext lists, per status, the statuses reachable from it. Pending orders
// have no assigned staff yet, so ready is only reachable through preparing.
func validNext() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Preparing, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {Completed, Cancelled},
		Completed: {Billed},
		Cancelled: {},
		Billed:    {},
	}
}

// StatusFromString parses the lowercase wire representation of a status.
// Unknown strings fail with a value-is-invalid error.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if s < Pending || s > Billed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase wire name of the status, "unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Billed
}

// CanTransitionTo reports whether next is directly reachable from s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validNext()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge from s to next and returns the new status.
//
// Returns:
//   - (next, nil) when the transition is listed in the state machine
//   - (Unknown, error wrapping ErrInvalidTransition) otherwise
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(next) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}

	return next, nil
}

// ValidateCanHaveStaff validates the consistency between order status and staff
// assignment when reconstructing orders from persistence.
//
// Rules:
//   - Pending orders must not have a staff member assigned
//   - Preparing, Ready, and Completed orders must have a staff member assigned
//   - Cancelled and Billed orders may or may not, depending on where they came from
func (s Status) ValidateCanHaveStaff(assigned bool) error {
	if assigned && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order must not have an assigned staff member", s),
		)
	}

	if !assigned && (s == Preparing || s == Ready || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order must have an assigned staff member", s),
		)
	}

	return nil
}
