// Package http is the inbound HTTP adapter: it decodes requests, resolves the
// acting identity from the bearer token, dispatches to command and query
// handlers, and maps error kinds to status codes. No business rules live here.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"mealorder/internal/core/application/usecases/commands"
	"mealorder/internal/core/application/usecases/queries"
	"mealorder/internal/core/domain/model/actor"
	"mealorder/internal/core/domain/model/kernel"
	"mealorder/internal/core/domain/model/order"
	"mealorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	updateOrderStatusHandler  commands.UpdateOrderStatusCommandHandler
	updateOrderDetailsHandler commands.UpdateOrderDetailsCommandHandler
	recordPaymentHandler      commands.RecordPaymentResultCommandHandler
	confirmDeliveryHandler    commands.ConfirmDeliveryCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	updateOrderDetailsHandler commands.UpdateOrderDetailsCommandHandler,
	recordPaymentHandler commands.RecordPaymentResultCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		updateOrderStatusHandler:  updateOrderStatusHandler,
		updateOrderDetailsHandler: updateOrderDetailsHandler,
		recordPaymentHandler:      recordPaymentHandler,
		confirmDeliveryHandler:    confirmDeliveryHandler,
		getOrderHandler:           getOrderHandler,
		listOrdersHandler:         listOrdersHandler,
		logger:                    logger.With("component", "http_server"),
	}
}

// RegisterRoutes wires all routes onto the echo instance. Every route except
// the health check sits behind the actor middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) {
	e.GET("/health", s.Health)

	api := e.Group("", ActorMiddleware(jwtSecret))
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus)
	api.PATCH("/orders/:id", s.UpdateOrderDetails)
	api.POST("/webhooks/payments", s.PaymentWebhook)
	api.POST("/webhooks/deliveries", s.DeliveryWebhook)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /orders - places a new meal order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var request CreateOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateOrderCommand(act, request.toOrderRequest())
	if err != nil {
		return s.respondError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponseFromAggregate(created))
}

// GetOrder handles GET /orders/:id - retrieves one order with its items.
func (s *Server) GetOrder(ctx echo.Context) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID, err := parseOrderID(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(act, orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromReadModel(result))
}

// ListOrders handles GET /orders - pages through a user's order history.
// Without a userId parameter the caller's own history is listed.
func (s *Server) ListOrders(ctx echo.Context) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	userID := act.ID()
	if param := ctx.QueryParam("userId"); param != "" {
		userID, err = kernel.UUIDFromString(param)
		if err != nil {
			return s.respondError(ctx, errs.NewValidationError(
				"INVALID_IDENTIFIER", "userId is not a valid identifier",
			))
		}
	}

	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	size, _ := strconv.Atoi(ctx.QueryParam("size"))

	query, err := queries.NewListOrdersQuery(act, userID, page, size)
	if err != nil {
		return s.respondError(ctx, err)
	}

	rows, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, listOrdersResponseFromReadModel(rows, query.Page(), query.Size()))
}

// UpdateOrderStatus handles PUT /orders/:id/status - requests a lifecycle
// transition.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID, err := parseOrderID(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var request UpdateStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid request body",
		})
	}

	newStatus, err := order.StatusFromString(request.Status)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, newStatus, act)
	if err != nil {
		return s.respondError(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// UpdateOrderDetails handles PATCH /orders/:id - replaces the editable fields
// of a pending order.
func (s *Server) UpdateOrderDetails(ctx echo.Context) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID, err := parseOrderID(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var request UpdateDetailsRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateOrderDetailsCommand(
		orderID, act, request.SpecialInstructions, request.AllergyNotes, request.Metadata,
	)
	if err != nil {
		return s.respondError(ctx, err)
	}

	updated, err := s.updateOrderDetailsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// PaymentWebhook handles POST /webhooks/payments - records a verified payment
// gateway callback. Only the system identity may call it.
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = requireSystem(act); err != nil {
		return s.respondError(ctx, err)
	}

	var request PaymentWebhookRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid request body",
		})
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return s.respondError(ctx, errs.NewValidationError(
			"INVALID_IDENTIFIER", "orderId is not a valid identifier",
		))
	}

	result, err := order.PaymentStatusFromString(request.Result)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewRecordPaymentResultCommand(orderID, result)
	if err != nil {
		return s.respondError(ctx, err)
	}

	updated, err := s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// DeliveryWebhook handles POST /webhooks/deliveries - confirms an RFID-scanned
// handover. Only the system identity may call it.
func (s *Server) DeliveryWebhook(ctx echo.Context) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = requireSystem(act); err != nil {
		return s.respondError(ctx, err)
	}

	var request DeliveryWebhookRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid request body",
		})
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return s.respondError(ctx, errs.NewValidationError(
			"INVALID_IDENTIFIER", "orderId is not a valid identifier",
		))
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	delivered, err := s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromAggregate(delivered))
}

// respondError logs server-side failures, then writes the mapped JSON error.
func (s *Server) respondError(ctx echo.Context, err error) error {
	if statusFor(err) >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}
	return respondError(ctx, err)
}

func requireSystem(act actor.Actor) error {
	if act.Role() != actor.RoleSystem {
		return errs.NewAuthorizationError(
			"NOT_AUTHORIZED",
			fmt.Sprintf("webhooks accept only the system identity, got role %s", act.Role()),
		)
	}
	return nil
}

func parseOrderID(ctx echo.Context) (kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValidationError(
			"INVALID_IDENTIFIER", "order id is not a valid identifier",
		)
	}
	return orderID, nil
}
