package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evenio/ticketing/internal/model"
	"github.com/evenio/ticketing/internal/queue"
	"github.com/evenio/ticketing/internal/repository"
	"github.com/evenio/ticketing/internal/service"
)

// stubLedger implements service.Ledger with canned behavior per event.
type stubLedger struct {
	events map[uint64]*model.Event
}

func (l *stubLedger) Reserve(ctx context.Context, eventID uint64, quantity uint32) (*model.Event, error) {
	e, ok := l.events[eventID]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	if e.AvailableTickets < quantity {
		return nil, repository.ErrInsufficientTickets
	}
	e.AvailableTickets -= quantity
	snapshot := *e
	return &snapshot, nil
}

func (l *stubLedger) Release(ctx context.Context, eventID uint64, quantity uint32) error {
	if e, ok := l.events[eventID]; ok {
		e.AvailableTickets += quantity
	}
	return nil
}

// stubOrderStore implements service.OrderStore; err, when set, fails
// every insert.
type stubOrderStore struct {
	err    error
	nextID uint64
	orders []model.Order
}

func (s *stubOrderStore) Insert(ctx context.Context, o *model.Order) error {
	if s.err != nil {
		return s.err
	}
	s.nextID++
	o.ID = s.nextID
	o.CreatedAt = time.Now().UTC()
	s.orders = append(s.orders, *o)
	return nil
}

func (s *stubOrderStore) ListByEvent(ctx context.Context, eventID uint64) ([]model.Order, error) {
	out := make([]model.Order, 0)
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].EventID == eventID {
			out = append(out, s.orders[i])
		}
	}
	return out, nil
}

func newOrderTestHandler(ledger *stubLedger, store *stubOrderStore) (*OrderHandler, *[]queue.OrderIssuedEvent) {
	catalog := &stubEventStore{}
	for _, e := range ledger.events {
		catalog.events = append(catalog.events, *e)
	}
	h := NewOrderHandler(service.NewOrderService(ledger, store), service.NewEventService(catalog))
	published := &[]queue.OrderIssuedEvent{}
	h.Publish = func(c echo.Context, ev queue.OrderIssuedEvent) {
		*published = append(*published, ev)
	}
	return h, published
}

func postOrder(t *testing.T, h *OrderHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.CreateOrder(e.NewContext(req, rec)))
	return rec
}

func TestCreateOrder_Success(t *testing.T) {
	ledger := &stubLedger{events: map[uint64]*model.Event{
		1: {ID: 1, Name: "Open Air Sessions", TotalTickets: 100, AvailableTickets: 100},
	}}
	h, published := newOrderTestHandler(ledger, &stubOrderStore{})

	rec := postOrder(t, h, `{"event_id":1,"quantity":30}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"order_number":"ORD-`)
	assert.Contains(t, rec.Body.String(), `"available_tickets":70`)

	require.Len(t, *published, 1)
	assert.Equal(t, uint32(30), (*published)[0].Quantity)
	assert.Equal(t, uint64(1), (*published)[0].EventID)
}

func TestCreateOrder_InvalidQuantity(t *testing.T) {
	ledger := &stubLedger{events: map[uint64]*model.Event{
		1: {ID: 1, TotalTickets: 10, AvailableTickets: 10},
	}}
	h, published := newOrderTestHandler(ledger, &stubOrderStore{})

	for _, body := range []string{`{"event_id":1,"quantity":0}`, `{"event_id":1,"quantity":-5}`} {
		rec := postOrder(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
	assert.Empty(t, *published)
}

func TestCreateOrder_MissingEventID(t *testing.T) {
	h, _ := newOrderTestHandler(&stubLedger{events: map[uint64]*model.Event{}}, &stubOrderStore{})
	rec := postOrder(t, h, `{"quantity":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_EventNotFound(t *testing.T) {
	h, _ := newOrderTestHandler(&stubLedger{events: map[uint64]*model.Event{}}, &stubOrderStore{})
	rec := postOrder(t, h, `{"event_id":42,"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_SoldOut(t *testing.T) {
	ledger := &stubLedger{events: map[uint64]*model.Event{
		1: {ID: 1, TotalTickets: 100, AvailableTickets: 5},
	}}
	h, published := newOrderTestHandler(ledger, &stubOrderStore{})

	rec := postOrder(t, h, `{"event_id":1,"quantity":10}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, uint32(5), ledger.events[1].AvailableTickets)
	assert.Empty(t, *published)
}

func TestCreateOrder_IssuanceFailure(t *testing.T) {
	ledger := &stubLedger{events: map[uint64]*model.Event{
		1: {ID: 1, TotalTickets: 100, AvailableTickets: 100},
	}}
	h, published := newOrderTestHandler(ledger, &stubOrderStore{err: errors.New("disk full")})

	rec := postOrder(t, h, `{"event_id":1,"quantity":3}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	// Inventory restored by the issuer's compensation.
	assert.Equal(t, uint32(100), ledger.events[1].AvailableTickets)
	assert.Empty(t, *published)
}

func TestListEventOrders(t *testing.T) {
	ledger := &stubLedger{events: map[uint64]*model.Event{
		1: {ID: 1, Name: "Open Air Sessions", TotalTickets: 100, AvailableTickets: 100},
	}}
	h, _ := newOrderTestHandler(ledger, &stubOrderStore{})

	postOrder(t, h, `{"event_id":1,"quantity":2}`)
	postOrder(t, h, `{"event_id":1,"quantity":5}`)

	rec := getPath(t, h.ListEventOrders, "/v1/events/1/orders", "id", "1")

	assert.Equal(t, http.StatusOK, rec.Code)
	var orders []model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	// Newest first.
	assert.Equal(t, uint32(5), orders[0].Quantity)
	assert.Equal(t, uint32(2), orders[1].Quantity)
}

func TestListEventOrders_EventNotFound(t *testing.T) {
	h, _ := newOrderTestHandler(&stubLedger{events: map[uint64]*model.Event{}}, &stubOrderStore{})
	rec := getPath(t, h.ListEventOrders, "/v1/events/99/orders", "id", "99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
