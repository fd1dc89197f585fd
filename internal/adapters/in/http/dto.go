package http

import (
	"time"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/order"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	Items        []OrderLineRequest `json:"items"`
	Instructions string             `json:"instructions"`
}

// OrderLineRequest is one requested line: a menu item reference and quantity.
// Name and price are resolved server-side from the catalog.
type OrderLineRequest struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

// UpdateOrderStatusRequest is the body of PUT /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// GenerateBillRequest is the body of POST /api/orders/bill.
type GenerateBillRequest struct {
	CustomerEmail string `json:"customerEmail"`
}

// OrderItemResponse is one order line in API responses.
type OrderItemResponse struct {
	MenuItemID     string `json:"menuItemId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	SubtotalCents  int64  `json:"subtotalCents"`
}

// OrderResponse is the API representation of an order.
type OrderResponse struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	CustomerID    string              `json:"customerId"`
	CustomerEmail string              `json:"customerEmail"`
	Status        string              `json:"status"`
	StaffID       *string             `json:"staffId,omitempty"`
	Instructions  string              `json:"instructions,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	TotalCents    int64               `json:"totalCents"`
	CreatedAt     time.Time           `json:"createdAt"`
	CompletedAt   *time.Time          `json:"completedAt,omitempty"`
}

// BillResponse is the body of a successful POST /api/orders/bill: the billed
// orders plus their combined total.
type BillResponse struct {
	CustomerEmail string          `json:"customerEmail"`
	Orders        []OrderResponse `json:"orders"`
	TotalCents    int64           `json:"totalCents"`
}

// ClearHistoryResponse reports how many historical orders were removed.
type ClearHistoryResponse struct {
	Deleted int64 `json:"deleted"`
}

// EventResponse is the payload streamed over the SSE events endpoint.
type EventResponse struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Order   *OrderResponse `json:"order,omitempty"`
}

func orderResponseFromDomain(aggregate *order.Order) OrderResponse {
	response := OrderResponse{
		ID:            aggregate.ID().String(),
		Number:        aggregate.Number(),
		CustomerID:    aggregate.CustomerID().String(),
		CustomerEmail: aggregate.CustomerEmail(),
		Status:        aggregate.Status().String(),
		Instructions:  aggregate.Instructions(),
		Items:         make([]OrderItemResponse, 0, len(aggregate.Items())),
		TotalCents:    aggregate.TotalCents(),
		CreatedAt:     aggregate.CreatedAt(),
		CompletedAt:   aggregate.CompletedAt(),
	}
	if staffID := aggregate.AssignedStaff(); staffID != nil {
		s := staffID.String()
		response.StaffID = &s
	}
	for _, item := range aggregate.Items() {
		response.Items = append(response.Items, OrderItemResponse{
			MenuItemID:     item.MenuItemID().String(),
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
			SubtotalCents:  item.SubtotalCents(),
		})
	}
	return response
}

func orderResponseFromView(view queries.OrderView) OrderResponse {
	response := OrderResponse{
		ID:            view.ID.String(),
		Number:        view.Number,
		CustomerID:    view.CustomerID.String(),
		CustomerEmail: view.CustomerEmail,
		Status:        view.Status,
		Instructions:  view.Instructions,
		Items:         make([]OrderItemResponse, 0, len(view.Items)),
		TotalCents:    view.TotalCents,
		CreatedAt:     view.CreatedAt,
		CompletedAt:   view.CompletedAt,
	}
	if view.StaffID != nil {
		s := view.StaffID.String()
		response.StaffID = &s
	}
	for _, item := range view.Items {
		response.Items = append(response.Items, OrderItemResponse{
			MenuItemID:     item.MenuItemID.String(),
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			SubtotalCents:  item.SubtotalCents,
		})
	}
	return response
}

func orderResponsesFromViews(views []queries.OrderView) []OrderResponse {
	responses := make([]OrderResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, orderResponseFromView(view))
	}
	return responses
}
