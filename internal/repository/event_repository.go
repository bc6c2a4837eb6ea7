package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/evenio/ticketing/internal/model"
)

// EventRepo provides data access to the events table and owns the
// authoritative available-ticket counter. Reserve and Release are the
// only sanctioned mutation paths for that counter; every other method
// is read-only or creation-only. All timestamps are stored in UTC.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// Create inserts a new event and populates the generated ID on the
// provided model. Available tickets are stored as given; the seeder
// and administrative callers are expected to pass a value no greater
// than the total.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events (name, date, total_tickets, available_tickets) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, e.Name, e.Date.UTC(), e.TotalTickets, e.AvailableTickets)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// List returns snapshots of all events ordered by date ascending.
// When no events exist, an empty slice is returned.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT id, name, date, total_tickets, available_tickets FROM events ORDER BY date ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.TotalTickets, &e.AvailableTickets); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// GetByID returns a snapshot of a single event. ErrEventNotFound is
// returned when no event with the given ID exists.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = `SELECT id, name, date, total_tickets, available_tickets FROM events WHERE id = ?`
	var e model.Event
	err := r.db.QueryRowContext(ctx, q, id).Scan(&e.ID, &e.Name, &e.Date, &e.TotalTickets, &e.AvailableTickets)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Reserve atomically subtracts quantity from the event's available
// tickets and returns the post-decrement snapshot. The check and the
// decrement are a single conditional UPDATE guarded by
// available_tickets >= quantity, so two concurrent reservations on the
// same event are serialised by the row lock the UPDATE takes: either
// the full quantity is subtracted or nothing changes. Reservations on
// different events touch different rows and do not contend.
//
// Failure modes: ErrInvalidQuantity when quantity is zero (checked
// before touching the database), ErrEventNotFound when the event does
// not exist and ErrInsufficientTickets when fewer than quantity
// tickets remain. None of these leaves any state behind.
func (r *EventRepo) Reserve(ctx context.Context, eventID uint64, quantity uint32) (*model.Event, error) {
	if quantity == 0 {
		return nil, ErrInvalidQuantity
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const upd = `UPDATE events SET available_tickets = available_tickets - ? WHERE id = ? AND available_tickets >= ?`
	result, err := tx.ExecContext(ctx, upd, quantity, eventID, quantity)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// The guard rejected the update: either the row is missing or
		// the remaining inventory is short. Distinguish the two inside
		// the same transaction.
		var available uint32
		err := tx.QueryRowContext(ctx, `SELECT available_tickets FROM events WHERE id = ?`, eventID).Scan(&available)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrInsufficientTickets
	}

	// Read the snapshot back while the row lock is still held so the
	// returned counts reflect exactly this reservation's commit point.
	const sel = `SELECT id, name, date, total_tickets, available_tickets FROM events WHERE id = ?`
	var e model.Event
	if err := tx.QueryRowContext(ctx, sel, eventID).Scan(&e.ID, &e.Name, &e.Date, &e.TotalTickets, &e.AvailableTickets); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &e, nil
}

// Release returns previously reserved tickets to the pool. It is the
// compensation path used when order persistence fails after a
// successful reservation. The counter is capped at total_tickets so a
// stray double release can never push availability past the issued
// total. ErrEventNotFound is returned when the event does not exist.
func (r *EventRepo) Release(ctx context.Context, eventID uint64, quantity uint32) error {
	if quantity == 0 {
		return nil
	}
	const q = `UPDATE events SET available_tickets = LEAST(available_tickets + ?, total_tickets) WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, quantity, eventID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// MySQL reports zero affected rows both for a missing row and
		// for a no-op update; confirm existence before reporting.
		var id uint64
		err := r.db.QueryRowContext(ctx, `SELECT id FROM events WHERE id = ?`, eventID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}
