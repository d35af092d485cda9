package queries

import (
	"errors"
	"strings"

	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery lists orders for the admin order table, newest first.
//
// Example:
//
//	query, err := NewGetOrdersQuery(order.Preparing, "asha")
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	status order.Status
	search string

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates the listing query. order.Unknown means every status;
// an empty search matches every order.
func NewGetOrdersQuery(status order.Status, search string) (GetOrdersQuery, error) {
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		status: status,
		search: strings.TrimSpace(search),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) Status() order.Status {
	return q.status
}

func (q GetOrdersQuery) Search() string {
	return q.search
}
