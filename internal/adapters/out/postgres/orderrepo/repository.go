package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM. The gorm
// connection must be opened with TranslateError enabled so unique constraint
// violations surface as gorm.ErrDuplicatedKey.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its lines to the database in one transaction.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ports.ErrDuplicateOrderNumber, aggregate.Number())
		}
		return err
	}

	return nil
}

// Get retrieves an order with its lines by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order with its lines by order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "number = ?", number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderNumber", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByCustomer retrieves all orders placed by a customer, newest first.
func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ListByStatus retrieves all orders in any of the given statuses, newest first.
func (r *GormOrderRepository) ListByStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status IN ?", statusInts(statuses)).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ListAssignedTo retrieves a staff member's orders in the given statuses,
// newest first.
func (r *GormOrderRepository) ListAssignedTo(
	ctx context.Context,
	staffID kernel.UUID,
	statuses ...order.Status,
) ([]*order.Order, error) {
	if err := staffID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("staff_id = ? AND status IN ?", staffID.Bytes(), statusInts(statuses)).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// CompareAndSetStatus conditionally moves an order from expected to next. The
// write only lands while the persisted status still equals expected; a zero
// row count is disambiguated with a follow-up read into not-found versus
// conflict.
func (r *GormOrderRepository) CompareAndSetStatus(
	ctx context.Context,
	id kernel.UUID,
	expected, next order.Status,
	completedAt *time.Time,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	updates := map[string]any{"status": int(next)}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(expected)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return fmt.Errorf("%w: order %s is no longer %s", ports.ErrConflict, id, expected)
}

// BulkSetStatus unconditionally sets the status of the given orders and
// returns the number of updated records.
func (r *GormOrderRepository) BulkSetStatus(ctx context.Context, ids []kernel.UUID, status order.Status) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id IN ?", raw).
		Update("status", int(status))
	return result.RowsAffected, result.Error
}

// DeleteByStatuses removes every order in any of the given statuses together
// with their lines, and returns the number of deleted orders.
func (r *GormOrderRepository) DeleteByStatuses(ctx context.Context, statuses ...order.Status) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status IN ?", statusInts(statuses)).
		Delete(&OrderDTO{})
	return result.RowsAffected, result.Error
}

func statusInts(statuses []order.Status) []int {
	ints := make([]int, 0, len(statuses))
	for _, s := range statuses {
		ints = append(ints, int(s))
	}
	return ints
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
