package model

import "time"

// Event represents a ticketed event and its remaining inventory.
// The available ticket counter is the only mutable field and is
// changed exclusively through the repository's reserve and release
// operations; all other fields are fixed at creation time.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – display name of the event.
//  Date             – when the event takes place.
//  TotalTickets     – number of tickets issued for the event.
//  AvailableTickets – tickets still available for purchase; always
//                     between 0 and TotalTickets.
type Event struct {
	ID               uint64    `json:"id"`                // events.id
	Name             string    `json:"name"`              // events.name
	Date             time.Time `json:"date"`              // events.date
	TotalTickets     uint32    `json:"total_tickets"`     // events.total_tickets
	AvailableTickets uint32    `json:"available_tickets"` // events.available_tickets
}
