// Package ports defines the contracts between the order workflow and its
// infrastructure: the transactional document store and the notification dispatcher.
package ports

import (
	"context"

	"momoadmin/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates inside a unit of work.
type OrderRepository interface {
	// Add persists a new order. Orders are created by checkout; the admin service
	// only uses Add to import and seed orders.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order's status and timestamps if the stored version still
	// equals aggregate.Version(), then advances the version.
	// A version mismatch returns *errs.ConcurrencyConflictError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get reads an order by id within the unit of work's snapshot.
	// Returns *errs.ObjectNotFoundError if the order does not exist.
	Get(ctx context.Context, id order.ID) (*order.Order, error)
}
