package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evenio/ticketing/internal/model"
	"github.com/evenio/ticketing/internal/repository"
	"github.com/evenio/ticketing/internal/service"
)

// stubEventStore implements service.EventStore over a fixed slice.
type stubEventStore struct {
	events []model.Event
}

func (s *stubEventStore) List(ctx context.Context) ([]model.Event, error) {
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *stubEventStore) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			e := s.events[i]
			return &e, nil
		}
	}
	return nil, repository.ErrEventNotFound
}

func getPath(t *testing.T, h func(echo.Context) error, path, paramName, paramValue string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramName != "" {
		c.SetParamNames(paramName)
		c.SetParamValues(paramValue)
	}
	require.NoError(t, h(c))
	return rec
}

func TestListEvents(t *testing.T) {
	store := &stubEventStore{events: []model.Event{
		{ID: 1, Name: "Acoustic Evenings", Date: time.Now().UTC(), TotalTickets: 80, AvailableTickets: 40},
	}}
	h := NewEventHandler(service.NewEventService(store))

	rec := getPath(t, h.ListEvents, "/v1/events", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available_tickets":40`)
	assert.Contains(t, rec.Body.String(), "Acoustic Evenings")
}

func TestGetEvent_NotFound(t *testing.T) {
	h := NewEventHandler(service.NewEventService(&stubEventStore{}))
	rec := getPath(t, h.GetEvent, "/v1/events/99", "id", "99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEvent_InvalidID(t *testing.T) {
	h := NewEventHandler(service.NewEventService(&stubEventStore{}))
	rec := getPath(t, h.GetEvent, "/v1/events/abc", "id", "abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
