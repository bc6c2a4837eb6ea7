package model

import "time"

// Order records a completed ticket purchase against an event.
// Orders are written exactly once when the purchase commits and are
// never updated or deleted afterwards.  The event is referenced by
// identifier; callers needing full event details must look the event
// up separately.
//
// Fields:
//  ID          – primary key identifier.
//  OrderNumber – unique, human-readable purchase token.
//  Quantity    – number of tickets bought in this order.
//  EventID     – event the order was placed against.
//  CreatedAt   – timestamp assigned when the row is inserted.
type Order struct {
	ID          uint64    `json:"id"`           // orders.id
	OrderNumber string    `json:"order_number"` // orders.order_number (unique)
	Quantity    uint32    `json:"quantity"`     // orders.quantity
	EventID     uint64    `json:"event_id"`     // orders.event_id
	CreatedAt   time.Time `json:"created_at"`   // orders.created_at
}
