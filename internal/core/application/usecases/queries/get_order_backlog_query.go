package queries

import (
	"errors"

	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/pkg/guard"
)

var (
	ErrGetOrderBacklogQueryIsNotConstructed = errors.New(
		"GetOrderBacklogQuery must be created via NewGetOrderBacklogQuery constructor",
	)
)

// GetOrderBacklogQuery counts the orders that still need work, per status.
// This is a parameterless query.
type GetOrderBacklogQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrderBacklogQuery() GetOrderBacklogQuery {
	return GetOrderBacklogQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrderBacklogQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderBacklogQueryIsNotConstructed)
}

// BacklogEntry is the number of orders currently in Status.
type BacklogEntry struct {
	Status order.Status
	Count  int
}
