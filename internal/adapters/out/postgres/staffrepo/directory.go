package staffrepo

import (
	"context"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/staff"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStaffDirectory implements ports.StaffDirectory using GORM.
type GormStaffDirectory struct {
	db *gorm.DB
}

// NewGormStaffDirectory creates a new GORM staff directory.
func NewGormStaffDirectory(db *gorm.DB) *GormStaffDirectory {
	return &GormStaffDirectory{db: db}
}

// ListEligible retrieves active staff members ordered by last assignment
// recency, never-assigned first. The head of this list is the round-robin
// pick.
func (d *GormStaffDirectory) ListEligible(ctx context.Context) ([]*staff.Staff, error) {
	var dtos []UserDTO
	err := d.db.WithContext(ctx).
		Where("role = ? AND is_active", roleStaff).
		Order("last_assigned_at ASC NULLS FIRST").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	members := make([]*staff.Staff, 0, len(dtos))
	for _, dto := range dtos {
		member, memberErr := toDomain(dto)
		if memberErr != nil {
			return nil, memberErr
		}
		members = append(members, member)
	}

	return members, nil
}

// TouchAssigned conditionally advances a staff member's lastAssignedAt from
// expected to now. The write only lands while the stored timestamp still
// equals expected (nil meaning never assigned), which makes the round-robin
// claim an atomic test-and-set: a concurrent assignment that already touched
// the member leaves this call with zero rows and a conflict.
func (d *GormStaffDirectory) TouchAssigned(ctx context.Context, id kernel.UUID, expected *time.Time, now time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	query := d.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", id.Bytes())
	if expected == nil {
		query = query.Where("last_assigned_at IS NULL")
	} else {
		query = query.Where("last_assigned_at = ?", *expected)
	}

	result := query.Update("last_assigned_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := d.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("staff", id.String())
	}
	return fmt.Errorf("%w: staff member %s was assigned concurrently", ports.ErrConflict, id)
}
