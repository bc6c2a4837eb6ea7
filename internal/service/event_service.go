// Package service implements the business operations exposed to the
// transport layer: listing events and issuing ticket orders. Services
// hold explicit references to the storage components they need and
// contain no framework wiring.
package service

import (
	"context"

	"github.com/evenio/ticketing/internal/model"
)

// EventStore is the read side of the event inventory as consumed by
// EventService. It is implemented by repository.EventRepo.
type EventStore interface {
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id uint64) (*model.Event, error)
}

// EventService exposes read-only event operations.
type EventService struct {
	events EventStore
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events EventStore) *EventService {
	return &EventService{events: events}
}

// ListEvents returns snapshots of all events. Two calls with no
// intervening purchase return identical availability values.
func (s *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}

// GetEvent returns a single event by ID. The repository's
// ErrEventNotFound is surfaced unchanged so handlers can map it to a
// 404 response.
func (s *EventService) GetEvent(ctx context.Context, id uint64) (*model.Event, error) {
	return s.events.GetByID(ctx, id)
}
