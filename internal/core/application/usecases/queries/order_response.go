package queries

import (
	"time"

	"momoadmin/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderResponse is the admin view of one order.
type OrderResponse struct {
	ID          order.ID
	Customer    string
	UserID      string
	Items       []OrderItemResponse
	Total       decimal.Decimal
	Status      order.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeliveredAt *time.Time

	// AllowedTransitions lists the statuses the admin may choose next;
	// it is empty for Delivered and Cancelled orders.
	AllowedTransitions []order.Status
}

type OrderItemResponse struct {
	Name     string
	Quantity int
}

// NewOrderResponse builds the admin view of o.
func NewOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{Name: item.Name(), Quantity: item.Quantity()})
	}

	return OrderResponse{
		ID:                 o.ID(),
		Customer:           o.Customer(),
		UserID:             o.UserID(),
		Items:              items,
		Total:              o.Total(),
		Status:             o.Status(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
		DeliveredAt:        o.DeliveredAt(),
		AllowedTransitions: o.AllowedTransitions(),
	}
}
