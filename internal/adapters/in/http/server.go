// Package http exposes the order lifecycle over a JSON API. Identity and role
// arrive as trusted headers set by the gateway in front of this service;
// authentication itself lives outside.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

const (
	headerUserID    = "X-User-Id"
	headerUserRole  = "X-User-Role"
	headerUserEmail = "X-User-Email"
)

// Server wires HTTP requests to application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	generateBillHandler      commands.GenerateBillCommandHandler
	clearHistoryHandler      commands.ClearHistoryCommandHandler

	// Query handlers
	getAllOrdersHandler      queries.GetAllOrdersQueryHandler
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler
	getStaffOrdersHandler    queries.GetStaffOrdersQueryHandler
	trackOrderHandler        queries.TrackOrderQueryHandler

	subscriber ports.EventSubscriber
}

// NewServer creates a new HTTP server with the required command and query
// handlers plus the event subscriber backing the SSE stream.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	generateBillHandler commands.GenerateBillCommandHandler,
	clearHistoryHandler commands.ClearHistoryCommandHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	getStaffOrdersHandler queries.GetStaffOrdersQueryHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	subscriber ports.EventSubscriber,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		cancelOrderHandler:       cancelOrderHandler,
		generateBillHandler:      generateBillHandler,
		clearHistoryHandler:      clearHistoryHandler,
		getAllOrdersHandler:      getAllOrdersHandler,
		getCustomerOrdersHandler: getCustomerOrdersHandler,
		getStaffOrdersHandler:    getStaffOrdersHandler,
		trackOrderHandler:        trackOrderHandler,
		subscriber:               subscriber,
	}
}

// RegisterRoutes attaches all order endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/orders")

	api.POST("", s.CreateOrder)
	api.GET("/my-orders", s.GetMyOrders)
	api.GET("/all", s.GetAllOrders)
	api.GET("/billed", s.GetBilledOrders)
	api.GET("/staff-orders", s.GetStaffOrders)
	api.PUT("/:id/status", s.UpdateOrderStatus)
	api.PUT("/:id/cancel", s.CancelOrder)
	api.GET("/track/:orderNumber", s.TrackOrder)
	api.GET("/track/:orderNumber/qr", s.TrackOrderQR)
	api.POST("/bill", s.GenerateBill)
	api.DELETE("/history", s.ClearHistory)
	api.GET("/events", s.StreamEvents)
}

// CreateOrder handles POST /api/orders - places a new order for the calling
// customer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeIdentityError(ctx, err)
	}

	var request CreateOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	lines := make([]commands.OrderLine, 0, len(request.Items))
	for _, item := range request.Items {
		menuItemID, idErr := kernel.UUIDFromString(item.MenuItemID)
		if idErr != nil {
			return writeError(ctx, http.StatusBadRequest, "Invalid menu item id: "+item.MenuItemID)
		}
		lines = append(lines, commands.OrderLine{ItemID: menuItemID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(
		actor.ID(),
		ctx.Request().Header.Get(headerUserEmail),
		lines,
		request.Instructions,
	)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	aggregate, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponseFromDomain(aggregate))
}

// GetMyOrders handles GET /api/orders/my-orders - the calling customer's
// orders, newest first.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeIdentityError(ctx, err)
	}

	query, err := queries.NewGetCustomerOrdersQuery(actor.ID())
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	views, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orderResponsesFromViews(views))
}

// GetAllOrders handles GET /api/orders/all - every order, optionally filtered
// with ?status=. Staff and admin only.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeIdentityError(ctx, err)
	}
	if actor.Role() == commands.RoleCustomer {
		return writeError(ctx, http.StatusForbidden, "Customers may only view their own orders")
	}

	query := queries.NewGetAllOrdersQuery()
	if raw := ctx.QueryParam("status"); raw != "" {
		status, statusErr := order.StatusFromString(raw)
		if statusErr != nil {
			return writeError(ctx, http.StatusBadRequest, "Unknown status: "+raw)
		}
		if query, err = queries.NewGetAllOrdersQueryWithStatus(status); err != nil {
			return writeError(ctx, http.StatusBadRequest, err.Error())
		}
	}

	views, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orderResponsesFromViews(views))
}

// GetBilledOrders handles GET /api/orders/billed - the billing history. Staff
// and admin only.
func (s *Server) GetBilledOrders(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeIdentityError(ctx, err)
	}
	if actor.Role() == commands.RoleCustomer {
		return writeError(ctx, http.StatusForbidden, "Customers may only view their own orders")
	}

	query, err := queries.NewGetAllOrdersQueryWithStatus(order.Billed)
	if err != nil {
		return writeError(ctx, http.StatusInternalServerError, err.Error())
	}

	views, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orderResponsesFromViews(views))
}

// GetStaffOrders handles GET /api/orders/staff-orders - the calling staff
// member's active workload (preparing and ready orders).
func (s *Server) GetStaffOrders(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeIdentityError(ctx, err)
	}
	if actor.Role() != commands.RoleStaff {
		return writeError(ctx, http.StatusForbidden, "Only staff members have assigned orders")
	}

	query, err := queries.NewGetStaffOrdersQuery(actor.ID())
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	views, err := s.getStaffOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orderResponsesFromViews(views))
}

// UpdateOrderStatus handles PUT /api/orders/:id/status - moves an order
// through its lifecycle.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeIdentityError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}
	next, err := order.StatusFromString(request.Status)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Unknown status: "+request.Status)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, next, actor)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	aggregate, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromDomain(aggregate))
}

// CancelOrder handles PUT /api/orders/:id/cancel - cancels an order within
// its cancellation window.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeIdentityError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	aggregate, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromDomain(aggregate))
}

// TrackOrder handles GET /api/orders/track/:orderNumber - public tracking by
// order number, no identity required.
func (s *Server) TrackOrder(ctx echo.Context) error {
	query, err := queries.NewTrackOrderQuery(ctx.Param("orderNumber"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	view, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromView(view))
}

// TrackOrderQR handles GET /api/orders/track/:orderNumber/qr - a PNG QR code
// pointing at the tracking endpoint, suitable for printing on a receipt.
func (s *Server) TrackOrderQR(ctx echo.Context) error {
	number := ctx.Param("orderNumber")
	query, err := queries.NewTrackOrderQuery(number)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	// Confirm the order exists before handing out a code for it.
	if _, err = s.trackOrderHandler.Handle(ctx.Request().Context(), query); err != nil {
		return writeDomainError(ctx, err)
	}

	png, err := qrcode.Encode("/api/orders/track/"+number, qrcode.Medium, 256)
	if err != nil {
		return writeError(ctx, http.StatusInternalServerError, "Failed to generate QR code")
	}

	return ctx.Blob(http.StatusOK, "image/png", png)
}

// GenerateBill handles POST /api/orders/bill - consolidates a customer's
// completed orders into a bill. Staff and admin only.
func (s *Server) GenerateBill(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeIdentityError(ctx, err)
	}
	if actor.Role() == commands.RoleCustomer {
		return writeError(ctx, http.StatusForbidden, "Only staff may generate bills")
	}

	var request GenerateBillRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewGenerateBillCommand(request.CustomerEmail)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	billed, err := s.generateBillHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := BillResponse{
		CustomerEmail: request.CustomerEmail,
		Orders:        make([]OrderResponse, 0, len(billed)),
	}
	for _, aggregate := range billed {
		response.Orders = append(response.Orders, orderResponseFromDomain(aggregate))
		response.TotalCents += aggregate.TotalCents()
	}

	return ctx.JSON(http.StatusOK, response)
}

// ClearHistory handles DELETE /api/orders/history - removes billed and
// cancelled orders. Admin only.
func (s *Server) ClearHistory(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeIdentityError(ctx, err)
	}
	if actor.Role() != commands.RoleAdmin {
		return writeError(ctx, http.StatusForbidden, "Only admins may clear order history")
	}

	deleted, err := s.clearHistoryHandler.Handle(ctx.Request().Context(), commands.NewClearHistoryCommand())
	if err != nil {
		return writeError(ctx, http.StatusInternalServerError, "Failed to clear order history")
	}

	return ctx.JSON(http.StatusOK, ClearHistoryResponse{Deleted: deleted})
}

func actorFromHeaders(ctx echo.Context) (commands.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return commands.Actor{}, err
	}
	return commands.NewActor(id, commands.Role(ctx.Request().Header.Get(headerUserRole)))
}

func writeIdentityError(ctx echo.Context, err error) error {
	return writeError(ctx, http.StatusUnauthorized, "Missing or invalid identity headers: "+err.Error())
}

// writeDomainError translates use case failures into HTTP statuses.
func writeDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, commands.ErrForbidden):
		return writeError(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, commands.ErrNoBillableOrders):
		return writeError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, commands.ErrItemUnavailable):
		return writeError(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, order.ErrCancellationWindowExpired):
		return writeError(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, order.ErrInvalidTransition):
		return writeError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, ports.ErrConflict):
		return writeError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return writeError(ctx, http.StatusBadRequest, err.Error())
	default:
		return writeError(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func writeError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
