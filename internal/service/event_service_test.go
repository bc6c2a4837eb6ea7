package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evenio/ticketing/internal/model"
	"github.com/evenio/ticketing/internal/repository"
)

// memoryEventStore backs EventService tests with a fixed snapshot set.
type memoryEventStore struct {
	events []model.Event
	lists  int
}

func (s *memoryEventStore) List(ctx context.Context) ([]model.Event, error) {
	s.lists++
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *memoryEventStore) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			e := s.events[i]
			return &e, nil
		}
	}
	return nil, repository.ErrEventNotFound
}

func TestListEvents_IsIdempotent(t *testing.T) {
	store := &memoryEventStore{events: []model.Event{
		{ID: 1, Name: "Indie Showcase", Date: time.Now().UTC(), TotalTickets: 120, AvailableTickets: 80},
		{ID: 2, Name: "Comedy Marathon", Date: time.Now().UTC(), TotalTickets: 60, AvailableTickets: 60},
	}}
	svc := NewEventService(store)

	first, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	second, err := svc.ListEvents(context.Background())
	require.NoError(t, err)

	// No intervening purchase: both reads see the same availability.
	assert.Equal(t, first, second)
	assert.Equal(t, 2, store.lists)
}

func TestGetEvent(t *testing.T) {
	store := &memoryEventStore{events: []model.Event{
		{ID: 7, Name: "Festival of Lights", TotalTickets: 200, AvailableTickets: 150},
	}}
	svc := NewEventService(store)

	event, err := svc.GetEvent(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Festival of Lights", event.Name)
	assert.Equal(t, uint32(150), event.AvailableTickets)

	_, err = svc.GetEvent(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrEventNotFound)
}
