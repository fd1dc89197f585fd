package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/staff"
)

// StaffDirectory is the read/write contract over staff records used by
// round-robin assignment.
type StaffDirectory interface {
	// ListEligible retrieves active staff members ordered by lastAssignedAt
	// ascending with never-assigned (null) first. The ordering is the whole
	// round-robin policy; callers take the head of the list.
	ListEligible(ctx context.Context) ([]*staff.Staff, error)

	// TouchAssigned conditionally sets a staff member's lastAssignedAt to now,
	// but only while it still equals expected (nil meaning never assigned).
	// Fails with ErrConflict when another assignment won the race; the caller
	// re-reads and retries. This test-and-set is what keeps two concurrent
	// creations from both acting on the same stale recency read.
	TouchAssigned(ctx context.Context, id kernel.UUID, expected *time.Time, now time.Time) error
}
