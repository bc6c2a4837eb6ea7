package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evenio/ticketing/internal/queue"
	"github.com/evenio/ticketing/internal/repository"
	"github.com/evenio/ticketing/internal/service"
)

// OrderHandler serves the ticket purchase endpoint and the per-event
// order listing.
type OrderHandler struct {
	Orders *service.OrderService
	Events *service.EventService
	// Publish sends the post-commit notification. Overridable in
	// tests; defaults to the RabbitMQ publisher.
	Publish func(c echo.Context, ev queue.OrderIssuedEvent)
}

// NewOrderHandler constructs an OrderHandler. Both services must be non-nil.
func NewOrderHandler(orders *service.OrderService, events *service.EventService) *OrderHandler {
	if orders == nil || events == nil {
		panic("nil service passed to NewOrderHandler")
	}
	return &OrderHandler{
		Orders: orders,
		Events: events,
		Publish: func(c echo.Context, ev queue.OrderIssuedEvent) {
			// Fire and forget: a broker outage must not fail a purchase
			// that already committed. Errors are logged by the publisher.
			_ = queue.PublishOrderIssued(c.Request().Context(), ev)
		},
	}
}

// createOrderRequest is the JSON body for POST /v1/orders.
type createOrderRequest struct {
	EventID  uint64 `json:"event_id"`
	Quantity int    `json:"quantity"`
}

// CreateOrder handles POST /v1/orders. It purchases the requested
// quantity of tickets for an event and returns the issued order plus
// the event snapshot taken at the reservation's commit point. Error
// mapping: invalid quantity -> 400, unknown event -> 404, sold
// out -> 409, issuance fault -> 502.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var body createOrderRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is required"})
	}

	result, err := h.Orders.Purchase(c.Request().Context(), body.EventID, body.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidQuantity):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid quantity"})
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, repository.ErrInsufficientTickets):
			return c.JSON(http.StatusConflict, echo.Map{"error": "not enough tickets available"})
		default:
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "order could not be issued"})
		}
	}

	h.Publish(c, queue.OrderIssuedEvent{
		OrderID:          result.Order.ID,
		OrderNumber:      result.Order.OrderNumber,
		EventID:          result.Event.ID,
		EventName:        result.Event.Name,
		Quantity:         result.Order.Quantity,
		AvailableTickets: result.Event.AvailableTickets,
		IssuedAt:         result.Order.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"order": result.Order,
		"event": result.Event,
	})
}

// ListEventOrders handles GET /v1/events/:id/orders. It returns all
// orders placed against an event, newest first, or 404 when the event
// does not exist.
func (h *OrderHandler) ListEventOrders(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Events.GetEvent(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	orders, err := h.Orders.ListOrders(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, orders)
}
