// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// OrderIssuedEvent is published when a ticket purchase commits. It
// contains enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type OrderIssuedEvent struct {
	OrderID          uint64 `json:"order_id"`
	OrderNumber      string `json:"order_number"`
	EventID          uint64 `json:"event_id"`
	EventName        string `json:"event_name"`
	Quantity         uint32 `json:"quantity"`
	AvailableTickets uint32 `json:"available_tickets"`
	IssuedAt         string `json:"issued_at"`
}
