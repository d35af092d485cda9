package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"momoadmin/internal/core/application/usecases/commands"
	"momoadmin/internal/core/application/usecases/queries"
	"momoadmin/internal/core/domain/model/kernel"
	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server serves the admin order API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	transitionHandler commands.TransitionOrderStatusCommandHandler
	placeOrderHandler commands.PlaceOrderCommandHandler

	// Query handlers
	getOrdersHandler   queries.GetOrdersQueryHandler
	getOrderHandler    queries.GetOrderQueryHandler
	getAuditLogHandler queries.GetOrderAuditLogQueryHandler
	getBacklogHandler  queries.GetOrderBacklogQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	transitionHandler commands.TransitionOrderStatusCommandHandler,
	placeOrderHandler commands.PlaceOrderCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAuditLogHandler queries.GetOrderAuditLogQueryHandler,
	getBacklogHandler queries.GetOrderBacklogQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		transitionHandler:  transitionHandler,
		placeOrderHandler:  placeOrderHandler,
		getOrdersHandler:   getOrdersHandler,
		getOrderHandler:    getOrderHandler,
		getAuditLogHandler: getAuditLogHandler,
		getBacklogHandler:  getBacklogHandler,
		logger:             logger.With("component", "http_server"),
	}
}

// RegisterHandlers mounts the health check and the authenticated /api/v1 routes.
func RegisterHandlers(e *echo.Echo, s *Server, tokens AdminTokens) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", KeyAuth(tokens))
	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/backlog", s.GetOrderBacklog)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.GET("/orders/:id/audit-log", s.GetOrderAuditLog)
}

// GetOrders handles GET /api/v1/orders?status=&search= - lists orders, newest first.
func (s *Server) GetOrders(ctx echo.Context) error {
	status := order.Unknown
	if raw := strings.TrimSpace(ctx.QueryParam("status")); raw != "" {
		parsed, err := order.ParseStatus(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Unknown status filter: " + raw,
			})
		}
		status = parsed
	}

	query, err := queries.NewGetOrdersQuery(status, ctx.QueryParam("search"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// PlaceOrder handles POST /api/v1/orders - records a new order in the Placed status.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items := make([]order.Item, 0, len(body.Items))
	for _, raw := range body.Items {
		item, err := order.NewItem(raw.Name, raw.Quantity)
		if err != nil {
			return s.writeError(ctx, err)
		}
		items = append(items, item)
	}

	id := body.ID
	if strings.TrimSpace(id) == "" {
		id = kernel.NewUUID().String()
	}

	cmd, err := commands.NewPlaceOrderCommand(id, body.Customer, body.UserID, items, body.Total)
	if err != nil {
		return s.writeError(ctx, err)
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toOrder(queries.NewOrderResponse(placed)))
}

// GetOrder handles GET /api/v1/orders/:id - one order with the statuses it may move to.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := queries.NewGetOrderQuery(ctx.Param("id"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - applies a status change
// on behalf of the authenticated admin.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var body StatusChange
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status, err := order.ParseStatus(strings.TrimSpace(body.Status))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Unknown status: " + body.Status,
		})
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(ctx.Param("id"), status, adminID(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(queries.NewOrderResponse(updated)))
}

// GetOrderAuditLog handles GET /api/v1/orders/:id/audit-log - status history, oldest first.
func (s *Server) GetOrderAuditLog(ctx echo.Context) error {
	query, err := queries.NewGetOrderAuditLogQuery(ctx.Param("id"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	entries, err := s.getAuditLogHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]AuditEntry, len(entries))
	for i, e := range entries {
		response[i] = toAuditEntry(e)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrderBacklog handles GET /api/v1/orders/backlog - open orders per status.
func (s *Server) GetOrderBacklog(ctx echo.Context) error {
	backlog, err := s.getBacklogHandler.Handle(ctx.Request().Context(), queries.NewGetOrderBacklogQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]BacklogEntry, len(backlog))
	for i, b := range backlog {
		response[i] = BacklogEntry{Status: b.Status, Count: b.Count}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) writeError(ctx echo.Context, err error) error {
	var invalid *order.InvalidTransitionError
	switch {
	case errors.As(err, &invalid):
		return ctx.JSON(http.StatusBadRequest, TransitionError{
			Code:            http.StatusBadRequest,
			Message:         err.Error(),
			CurrentStatus:   invalid.Current,
			RequestedStatus: invalid.Requested,
		})
	case errors.Is(err, commands.ErrOrderNotFound), errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found: " + ctx.Param("id"),
		})
	case errors.Is(err, commands.ErrOrderAlreadyExists):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrStoreConflict):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "The order was changed by someone else, please retry",
		})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ctx.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Request was cancelled",
		})
	}

	s.logger.ErrorContext(ctx.Request().Context(), "request failed",
		"method", ctx.Request().Method,
		"path", ctx.Path(),
		"error", err,
	)
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}
