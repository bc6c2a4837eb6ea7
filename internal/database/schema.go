package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema statements are idempotent so the server can apply them on
// every startup. The UNIQUE index on orders.order_number is a hard
// requirement: it is the storage-level enforcement of order-number
// uniqueness that the issuer's retry loop relies on.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS events (
        id                BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
        name              VARCHAR(255)    NOT NULL,
        date              DATETIME        NOT NULL,
        total_tickets     INT UNSIGNED    NOT NULL,
        available_tickets INT UNSIGNED    NOT NULL,
        PRIMARY KEY (id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS orders (
        id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
        order_number VARCHAR(64)     NOT NULL,
        quantity     INT UNSIGNED    NOT NULL,
        event_id     BIGINT UNSIGNED NOT NULL,
        created_at   TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
        PRIMARY KEY (id),
        UNIQUE KEY uq_orders_order_number (order_number),
        CONSTRAINT fk_orders_event FOREIGN KEY (event_id) REFERENCES events (id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema statements in order. Each statement is
// safe to re-run against an up-to-date database.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
