// Package staff provides the staff member entity used by order assignment.
// Only the scheduling-relevant subset of a staff record lives in the core:
// identity, active flag, and the recency timestamp driving round-robin
// fairness.
package staff

import (
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// ErrStaffIsNotConstructed is returned when a Staff instance was not created
// through NewStaff or RestoreStaff.
var ErrStaffIsNotConstructed = errors.New("Staff must be created via NewStaff or RestoreStaff")

// Staff represents a kitchen staff member eligible for order assignment.
//
// Invariants:
//   - Must have a valid unique identifier and a non-empty name
//   - Only active staff members are eligible for assignment
//   - lastAssignedAt is nil until the first assignment; a nil value sorts
//     before every timestamp so never-assigned staff go first
type Staff struct {
	id             kernel.UUID
	name           string
	isActive       bool
	lastAssignedAt *time.Time

	isConstructed bool
}

// NewStaff creates an active staff member that has never been assigned.
func NewStaff(id kernel.UUID, name string) (*Staff, error) {
	return RestoreStaff(id, name, true, nil)
}

// RestoreStaff reconstructs a staff member from persistence.
func RestoreStaff(id kernel.UUID, name string, isActive bool, lastAssignedAt *time.Time) (*Staff, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Staff{
		id:             id,
		name:           name,
		isActive:       isActive,
		lastAssignedAt: lastAssignedAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Staff instance was created through a constructor.
func (s *Staff) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStaffIsNotConstructed
	}
	return nil
}

// ID returns the staff member's unique identifier.
func (s *Staff) ID() kernel.UUID {
	return s.id
}

// Name returns the staff member's display name.
func (s *Staff) Name() string {
	return s.name
}

// IsActive reports whether the staff member may receive assignments.
func (s *Staff) IsActive() bool {
	return s.isActive
}

// LastAssignedAt returns the timestamp of the most recent assignment,
// or nil if the staff member was never assigned.
func (s *Staff) LastAssignedAt() *time.Time {
	return s.lastAssignedAt
}

// MarkAssigned records an assignment at the given time.
func (s *Staff) MarkAssigned(now time.Time) {
	assignedAt := now
	s.lastAssignedAt = &assignedAt
}
