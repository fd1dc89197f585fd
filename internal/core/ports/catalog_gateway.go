package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
)

// CatalogItem is the read-only projection of a menu item the core needs to
// validate and price an order line.
type CatalogItem struct {
	ID          kernel.UUID
	Name        string
	PriceCents  int64
	IsAvailable bool
}

// CatalogGateway is the read-only lookup of item price and availability.
// Menu management itself is an external collaborator; the core only ever
// resolves identifiers at order-creation time.
type CatalogGateway interface {
	// GetItem retrieves a menu item by identifier. Missing items fail with a
	// not-found error; availability is returned, not enforced, so the caller
	// can report which line made the order unfulfillable.
	GetItem(ctx context.Context, id kernel.UUID) (CatalogItem, error)
}
