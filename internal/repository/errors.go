// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios. For example, ErrInsufficientTickets signals an expected
// business condition (the event sold out) rather than a system fault,
// while ErrDuplicateOrderNumber reports a unique-constraint violation
// that callers are expected to retry with a fresh order number.
package repository

import "errors"

// ErrEventNotFound is returned when no event exists with the
// requested identifier. Handlers should translate this into an
// HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrInsufficientTickets is returned when a reservation asks for
// more tickets than the event has available. No state is changed.
// Handlers should translate this into an HTTP 409 response.
var ErrInsufficientTickets = errors.New("not enough tickets available")

// ErrInvalidQuantity is returned when a caller requests a
// non-positive ticket quantity. Handlers should translate this
// into an HTTP 400 response.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// ErrDuplicateOrderNumber is returned when an order insert collides
// with an existing order_number. The issuer regenerates the number
// and retries the insert; this error never reaches HTTP clients.
var ErrDuplicateOrderNumber = errors.New("duplicate order number")
