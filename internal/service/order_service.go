package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/evenio/ticketing/internal/model"
	"github.com/evenio/ticketing/internal/repository"
)

// Ledger is the mutation side of the event inventory as consumed by
// OrderService. Reserve must be atomic with respect to concurrent
// reservations on the same event; Release undoes a reservation when a
// later step fails. It is implemented by repository.EventRepo.
type Ledger interface {
	Reserve(ctx context.Context, eventID uint64, quantity uint32) (*model.Event, error)
	Release(ctx context.Context, eventID uint64, quantity uint32) error
}

// OrderStore persists and reads issued orders. Insert must report a
// collision on the unique order number as
// repository.ErrDuplicateOrderNumber. It is implemented by
// repository.OrderRepo.
type OrderStore interface {
	Insert(ctx context.Context, o *model.Order) error
	ListByEvent(ctx context.Context, eventID uint64) ([]model.Order, error)
}

// ErrIssuanceFailed reports an infrastructure fault while persisting
// an order after the reservation succeeded. By the time it is
// returned the reserved tickets have been released again (or the
// failure to do so has been logged for manual reconciliation), so the
// caller never sees a "maybe succeeded" outcome.
var ErrIssuanceFailed = errors.New("order issuance failed")

// orderInsertAttempts bounds how often the issuer regenerates the
// order number after a unique-key collision before giving up.
const orderInsertAttempts = 3

// PurchaseResult carries the issued order together with the event
// snapshot taken at the reservation's commit point.
type PurchaseResult struct {
	Order model.Order
	Event model.Event
}

// OrderService turns granted reservations into durable orders. It
// composes the ledger's atomic reserve with order persistence and
// compensates the reservation whenever persistence cannot complete.
type OrderService struct {
	ledger Ledger
	orders OrderStore
}

// NewOrderService constructs an OrderService with its dependencies.
func NewOrderService(ledger Ledger, orders OrderStore) *OrderService {
	return &OrderService{ledger: ledger, orders: orders}
}

// Purchase reserves quantity tickets for the event and persists the
// resulting order. Business rejections (unknown event, sold out,
// quantity outside the accepted range) are returned as the repository
// sentinels with no state change. When the order insert fails after the reservation
// succeeded (including caller-side cancellation), the reserved
// quantity is released again before ErrIssuanceFailed is returned.
// The reservation itself is never retried; only the insert is, and
// only on an order-number collision.
func (s *OrderService) Purchase(ctx context.Context, eventID uint64, quantity int) (*PurchaseResult, error) {
	// The upper bound guards the uint32 conversion below: without it a
	// quantity past the counter range would silently truncate and
	// reserve the low 32 bits instead of being rejected.
	if quantity <= 0 || int64(quantity) > math.MaxUint32 {
		return nil, repository.ErrInvalidQuantity
	}

	event, err := s.ledger.Reserve(ctx, eventID, uint32(quantity))
	if err != nil {
		return nil, err
	}

	order := model.Order{
		Quantity: uint32(quantity),
		EventID:  event.ID,
	}
	for attempt := 1; attempt <= orderInsertAttempts; attempt++ {
		order.OrderNumber = newOrderNumber()
		err = s.orders.Insert(ctx, &order)
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) {
			break
		}
		log.Printf("order: order number collision on %s (attempt %d), regenerating", order.OrderNumber, attempt)
	}
	if err != nil {
		s.compensate(ctx, event.ID, uint32(quantity))
		return nil, fmt.Errorf("%w: %v", ErrIssuanceFailed, err)
	}

	return &PurchaseResult{Order: order, Event: *event}, nil
}

// ListOrders returns all orders placed against an event, newest
// first. Callers are expected to have verified the event exists; an
// unknown event simply yields an empty list.
func (s *OrderService) ListOrders(ctx context.Context, eventID uint64) ([]model.Order, error) {
	return s.orders.ListByEvent(ctx, eventID)
}

// compensate returns reserved tickets to the pool after a failed
// insert. The release runs on a context detached from the caller's so
// a cancelled purchase request cannot also cancel its own rollback. A
// failed release violates the inventory/order invariant and is logged
// loudly for manual reconciliation; it cannot be swallowed.
func (s *OrderService) compensate(ctx context.Context, eventID uint64, quantity uint32) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.ledger.Release(releaseCtx, eventID, quantity); err != nil {
		log.Printf("order: CONSISTENCY FAULT: failed to release %d tickets for event %d after insert failure: %v",
			quantity, eventID, err)
	}
}

// newOrderNumber builds an order number from a millisecond timestamp
// and a UUID suffix. The timestamp keeps numbers roughly sortable for
// debugging; the UUID makes accidental collisions vanishingly rare.
// The orders.order_number UNIQUE index remains the actual authority,
// with Purchase retrying on a reported collision.
func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UTC().UnixMilli(), uuid.NewString())
}
