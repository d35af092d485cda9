package queries

import (
	"errors"
	"time"

	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/pkg/guard"
)

var (
	ErrGetOrderAuditLogQueryIsNotConstructed = errors.New(
		"GetOrderAuditLogQuery must be created via NewGetOrderAuditLogQuery constructor",
	)
)

// GetOrderAuditLogQuery returns who changed an order's status and when, oldest first.
//
// Example:
//
//	query, _ := NewGetOrderAuditLogQuery("4582")
//	entries, err := handler.Handle(ctx, query)
//	for _, e := range entries {
//	    fmt.Printf("%s: %s -> %s by %s\n", e.Timestamp, e.PreviousStatus, e.NewStatus, e.UpdatedBy)
//	}
type GetOrderAuditLogQuery struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewGetOrderAuditLogQuery(orderID string) (GetOrderAuditLogQuery, error) {
	id, err := order.NewID(orderID)
	if err != nil {
		return GetOrderAuditLogQuery{}, err
	}
	return GetOrderAuditLogQuery{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderAuditLogQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderAuditLogQueryIsNotConstructed)
}

func (q GetOrderAuditLogQuery) OrderID() order.ID {
	return q.orderID
}

// AuditEntryResponse is one recorded status change.
type AuditEntryResponse struct {
	ID             string
	Action         string
	OrderID        order.ID
	PreviousStatus order.Status
	NewStatus      order.Status
	UpdatedBy      string
	Timestamp      time.Time
}
