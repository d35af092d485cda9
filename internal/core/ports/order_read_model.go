package ports

import (
	"context"

	"momoadmin/internal/core/domain/model/audit"
	"momoadmin/internal/core/domain/model/order"
)

// OrderFilter narrows ListOrders. Zero values mean "no filter".
type OrderFilter struct {
	Status order.Status
	// Search matches case-insensitively against the order id and customer name.
	Search string
}

// OrderReadModel serves the admin screens outside any transaction.
type OrderReadModel interface {
	// ListOrders returns matching orders, newest first.
	ListOrders(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// GetOrder returns *errs.ObjectNotFoundError if the order does not exist.
	GetOrder(ctx context.Context, id order.ID) (*order.Order, error)

	// ListAuditEntries returns the order's audit trail, oldest first.
	ListAuditEntries(ctx context.Context, id order.ID) ([]audit.Entry, error)

	// CountByStatus returns how many orders are in each status. Statuses with no
	// orders may be absent.
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
}
