// Package queries contains read-only operations implementing the query side of
// the CQRS architecture. Query handlers bypass the domain layer and read the
// database directly, returning lightweight view models.
package queries

import (
	"context"
	"database/sql"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItemView is one order line as presented to clients.
type OrderItemView struct {
	MenuItemID     kernel.UUID
	Name           string
	Quantity       int
	UnitPriceCents int64
	SubtotalCents  int64
}

// OrderView is the read model for an order: the full aggregate state flattened
// for presentation, with the total computed from the item snapshots.
type OrderView struct {
	ID            kernel.UUID
	Number        string
	CustomerID    kernel.UUID
	CustomerEmail string
	Status        string
	StaffID       *kernel.UUID
	Instructions  string
	Items         []OrderItemView
	TotalCents    int64
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

// fetchOrderViews reads orders matching the given WHERE clause, newest first,
// and attaches their lines with a single follow-up query.
func fetchOrderViews(ctx context.Context, db *gorm.DB, where string, args ...any) ([]OrderView, error) {
	views := make([]OrderView, 0)

	query := `
		SELECT
			id,
			number,
			customer_id,
			customer_email,
			instructions,
			status,
			staff_id,
			created_at,
			completed_at
		FROM orders
	`
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var view OrderView
		var id uuid.UUID
		var customerID uuid.UUID
		var staffID uuid.NullUUID
		var status int
		var completedAt sql.NullTime

		err = rows.Scan(
			&id,
			&view.Number,
			&customerID,
			&view.CustomerEmail,
			&view.Instructions,
			&status,
			&staffID,
			&view.CreatedAt,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = orderID

		custID, idErr := kernel.UUIDFromBytes(customerID[:])
		if idErr != nil {
			return nil, idErr
		}
		view.CustomerID = custID

		if staffID.Valid {
			sID, idErr := kernel.UUIDFromBytes(staffID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			view.StaffID = &sID
		}
		if completedAt.Valid {
			at := completedAt.Time
			view.CompletedAt = &at
		}

		view.Status = order.Status(status).String()
		view.Items = make([]OrderItemView, 0)
		views = append(views, view)
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(views) == 0 {
		return views, nil
	}

	if err = attachItems(ctx, db, views, ids); err != nil {
		return nil, err
	}
	return views, nil
}

func attachItems(ctx context.Context, db *gorm.DB, views []OrderView, ids []uuid.UUID) error {
	byID := make(map[uuid.UUID]*OrderView, len(views))
	for i := range views {
		byID[views[i].ID.Bytes()] = &views[i]
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			menu_item_id,
			name,
			quantity,
			unit_price_cents
		FROM order_items
		WHERE order_id IN ?
		ORDER BY id
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID, menuItemID uuid.UUID
		var item OrderItemView

		err = rows.Scan(
			&orderID,
			&menuItemID,
			&item.Name,
			&item.Quantity,
			&item.UnitPriceCents,
		)
		if err != nil {
			return err
		}

		itemID, idErr := kernel.UUIDFromBytes(menuItemID[:])
		if idErr != nil {
			return idErr
		}
		item.MenuItemID = itemID
		item.SubtotalCents = int64(item.Quantity) * item.UnitPriceCents

		view, ok := byID[orderID]
		if !ok {
			continue
		}
		view.Items = append(view.Items, item)
		view.TotalCents += item.SubtotalCents
	}

	return rows.Err()
}
