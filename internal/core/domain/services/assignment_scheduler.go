package services

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/core/ports"
)

// ErrNoEligibleStaff is returned when no active staff member is available to
// take a new order. The order then stays pending and unassigned; this is a
// normal outcome, not a failure of the creation itself.
var ErrNoEligibleStaff = errors.New("no eligible staff member")

// touchRetries bounds how many times AssignNext re-reads the directory after
// losing a recency race to a concurrent assignment.
const touchRetries = 3

// AssignmentScheduler is the domain service that routes a new order to a staff
// member. The policy is round-robin by recency: among active staff, pick the
// one whose last assignment is oldest, with never-assigned members first.
//
// Fairness under concurrency comes from a test-and-set on the staff member's
// lastAssignedAt: the touch only succeeds while the timestamp still matches
// the one the scheduler read, so two creations racing on the same stale
// snapshot cannot both claim the same member. The loser re-reads and picks
// whoever is least recently assigned now.
type AssignmentScheduler struct {
	staffDirectory ports.StaffDirectory
}

// NewAssignmentScheduler creates an AssignmentScheduler backed by the given
// staff directory.
func NewAssignmentScheduler(staffDirectory ports.StaffDirectory) (AssignmentScheduler, error) {
	if staffDirectory == nil {
		return AssignmentScheduler{}, errors.New("staffDirectory is required")
	}
	return AssignmentScheduler{staffDirectory: staffDirectory}, nil
}

// AssignNext selects the least recently assigned active staff member, claims
// them with a conditional touch of lastAssignedAt, and assigns the order
// (moving it from pending to preparing).
//
// Returns:
//   - *staff.Staff: the member the order was assigned to
//   - error: ErrNoEligibleStaff when the directory has no active members,
//     ports.ErrConflict when every retry lost the recency race, or
//     validation/assignment errors
func (s AssignmentScheduler) AssignNext(ctx context.Context, aggregate *order.Order, now time.Time) (*staff.Staff, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	for attempt := 0; attempt <= touchRetries; attempt++ {
		eligible, err := s.staffDirectory.ListEligible(ctx)
		if err != nil {
			return nil, err
		}
		if len(eligible) == 0 {
			return nil, ErrNoEligibleStaff
		}

		candidate := eligible[0]
		if err := candidate.Validate(); err != nil {
			return nil, err
		}

		err = s.staffDirectory.TouchAssigned(ctx, candidate.ID(), candidate.LastAssignedAt(), now)
		if errors.Is(err, ports.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if err := aggregate.Assign(candidate.ID()); err != nil {
			return nil, err
		}
		candidate.MarkAssigned(now)
		return candidate, nil
	}

	return nil, ports.ErrConflict
}
