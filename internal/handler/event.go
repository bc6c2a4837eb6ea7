// Package handler contains the HTTP handlers exposing the ticketing
// API. Handlers are thin adapters: they parse input, delegate to the
// service layer and translate sentinel errors into HTTP statuses.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/evenio/ticketing/internal/repository"
	"github.com/evenio/ticketing/internal/service"
)

// EventHandler serves read-only event endpoints.
type EventHandler struct {
	Events *service.EventService
}

// NewEventHandler constructs an EventHandler. The service must be non-nil.
func NewEventHandler(events *service.EventService) *EventHandler {
	if events == nil {
		panic("nil service passed to NewEventHandler")
	}
	return &EventHandler{Events: events}
}

// ListEvents handles GET /v1/events. It returns all events with their
// current availability as a JSON array.
func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.Events.ListEvents(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent handles GET /v1/events/:id. It returns a single event or
// 404 when the identifier is unknown.
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	event, err := h.Events.GetEvent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, event)
}
