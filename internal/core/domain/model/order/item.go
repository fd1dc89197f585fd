package order

import (
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Item is a value object representing one line of an order. The unit price is
// a snapshot taken from the catalog at ordering time, so the order total stays
// reproducible even if the menu price changes later.
type Item struct {
	menuItemID     kernel.UUID
	name           string
	quantity       int
	unitPriceCents int64
}

// NewItem creates a validated order line.
//
// Parameters:
//   - menuItemID: Identifier of the catalog item (must be a valid UUID)
//   - name: Display name snapshotted for receipts (must not be empty)
//   - quantity: Number of units ordered (must be at least 1)
//   - unitPriceCents: Catalog price per unit in cents at ordering time (must not be negative)
func NewItem(menuItemID kernel.UUID, name string, quantity int, unitPriceCents int64) (Item, error) {
	if err := menuItemID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("name")
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not at least 1", quantity))
	}
	if unitPriceCents < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPriceCents", fmt.Errorf("%d is negative", unitPriceCents))
	}

	return Item{
		menuItemID:     menuItemID,
		name:           name,
		quantity:       quantity,
		unitPriceCents: unitPriceCents,
	}, nil
}

// MenuItemID returns the identifier of the ordered catalog item.
func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Name returns the item name snapshotted at ordering time.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPriceCents returns the per-unit price snapshot in cents.
func (i Item) UnitPriceCents() int64 {
	return i.unitPriceCents
}

// SubtotalCents returns quantity times the snapshotted unit price.
func (i Item) SubtotalCents() int64 {
	return int64(i.quantity) * i.unitPriceCents
}
