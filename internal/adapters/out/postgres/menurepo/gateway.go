// Package menurepo provides the GORM-backed catalog gateway. Menu management
// lives outside the ordering core; this adapter only resolves item identity,
// price and availability at order-creation time.
package menurepo

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItemDTO represents the database structure of a menu item.
type MenuItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	PriceCents  int64     `gorm:"not null"`
	IsAvailable bool      `gorm:"default:true"`
}

// TableName overrides GORM's default naming convention to use "menu_items".
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// GormCatalogGateway implements ports.CatalogGateway using GORM.
type GormCatalogGateway struct {
	db *gorm.DB
}

// NewGormCatalogGateway creates a new GORM catalog gateway.
func NewGormCatalogGateway(db *gorm.DB) *GormCatalogGateway {
	return &GormCatalogGateway{db: db}
}

// GetItem retrieves a menu item by identifier, returning its current price
// and availability for snapshotting onto an order line.
func (g *GormCatalogGateway) GetItem(ctx context.Context, id kernel.UUID) (ports.CatalogItem, error) {
	if err := id.Validate(); err != nil {
		return ports.CatalogItem{}, err
	}

	var dto MenuItemDTO
	err := g.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CatalogItem{}, errs.NewObjectNotFoundError("menuItem", id.String())
		}
		return ports.CatalogItem{}, err
	}

	itemID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.CatalogItem{}, err
	}

	return ports.CatalogItem{
		ID:          itemID,
		Name:        dto.Name,
		PriceCents:  dto.PriceCents,
		IsAvailable: dto.IsAvailable,
	}, nil
}
