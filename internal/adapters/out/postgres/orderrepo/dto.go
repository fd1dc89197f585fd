// Package orderrepo provides the GORM-backed order repository. It handles the
// conversion between order domain aggregates and their relational
// representation across the orders and order_items tables.
package orderrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The unique index on Number backs duplicate order number detection; the
// status and assignment indexes serve the list queries.
type OrderDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Number        string         `gorm:"uniqueIndex;not null"`
	CustomerID    uuid.UUID      `gorm:"type:uuid;index"`
	CustomerEmail string         `gorm:"index"`
	Instructions  string
	Status        int            `gorm:"index"`
	StaffID       *uuid.UUID     `gorm:"type:uuid;index"`
	Items         []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted order line with its price snapshot.
type OrderItemDTO struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID     uuid.UUID `gorm:"type:uuid"`
	Name           string
	Quantity       int
	UnitPriceCents int64
}

// TableName overrides GORM's default naming convention to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var staffID *uuid.UUID
	if id := aggregate.AssignedStaff(); id != nil {
		raw := id.Bytes()
		staffID = &raw
	}

	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			OrderID:        aggregate.ID().Bytes(),
			MenuItemID:     item.MenuItemID().Bytes(),
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		Number:        aggregate.Number(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		CustomerEmail: aggregate.CustomerEmail(),
		Instructions:  aggregate.Instructions(),
		Status:        int(aggregate.Status()),
		StaffID:       staffID,
		Items:         itemDTOs,
		CreatedAt:     aggregate.CreatedAt(),
		CompletedAt:   aggregate.CompletedAt(),
	}
}

// toDomain converts a database DTO (with its items loaded) back to an order
// domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var staffID *kernel.UUID
	if dto.StaffID != nil {
		sID, staffErr := kernel.UUIDFromBytes((*dto.StaffID)[:])
		if staffErr != nil {
			return nil, staffErr
		}
		staffID = &sID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, itemErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(menuItemID, itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPriceCents)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		customerID,
		dto.CustomerEmail,
		items,
		dto.Instructions,
		order.Status(dto.Status),
		staffID,
		dto.CreatedAt,
		dto.CompletedAt,
	)
}
