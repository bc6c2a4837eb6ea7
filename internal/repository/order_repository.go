package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/evenio/ticketing/internal/model"
)

// OrderRepo provides data access to the orders table. Orders are
// insert-only: once written they are never updated or deleted. The
// order_number column carries a UNIQUE index, so uniqueness is
// enforced by the database rather than by an application-level check.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// mysqlDuplicateEntry is the server error code for a unique-key
// violation (ER_DUP_ENTRY).
const mysqlDuplicateEntry = 1062

// Insert persists a new order and populates the generated ID and the
// database-assigned creation timestamp on the provided model. A
// collision on order_number is reported as ErrDuplicateOrderNumber so
// the caller can regenerate the number and retry; any other error is
// returned unchanged.
func (r *OrderRepo) Insert(ctx context.Context, o *model.Order) error {
	const q = `INSERT INTO orders (order_number, quantity, event_id) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, o.OrderNumber, o.Quantity, o.EventID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrDuplicateOrderNumber
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	// Query back the row to populate the DB-assigned timestamp.
	const sel = `SELECT created_at FROM orders WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, o.ID).Scan(&o.CreatedAt)
}

// ListByEvent returns all orders placed against an event, newest
// first. When no orders exist, an empty slice is returned.
func (r *OrderRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Order, error) {
	const q = `SELECT id, order_number, quantity, event_id, created_at
               FROM orders
               WHERE event_id = ?
               ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.Quantity, &o.EventID, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
