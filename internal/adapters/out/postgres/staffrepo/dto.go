// Package staffrepo provides the GORM-backed staff directory used by
// round-robin order assignment. It reads from the shared users table, exposing
// only active staff members to the scheduler.
package staffrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/staff"

	"github.com/google/uuid"
)

// roleStaff is the users.role value marking kitchen staff. Other roles
// (customer, admin) never enter the assignment rotation.
const roleStaff = "staff"

// UserDTO represents the slice of a user record the directory needs. The
// composite index serves the eligibility scan; last_assigned_at additionally
// backs the conditional touch.
type UserDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string
	Role           string `gorm:"index:idx_users_eligibility"`
	IsActive       bool   `gorm:"index:idx_users_eligibility"`
	LastAssignedAt *time.Time
}

// TableName overrides GORM's default naming convention to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// toDomain converts a user record to a staff domain entity.
func toDomain(dto UserDTO) (*staff.Staff, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return staff.RestoreStaff(id, dto.Name, dto.IsActive, dto.LastAssignedAt)
}
