package http

import (
	"time"

	"momoadmin/internal/core/application/usecases/queries"
	"momoadmin/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TransitionError is returned when the requested status is not reachable from the
// order's current status.
type TransitionError struct {
	Code            int          `json:"code"`
	Message         string       `json:"message"`
	CurrentStatus   order.Status `json:"currentStatus"`
	RequestedStatus order.Status `json:"requestedStatus"`
}

// StatusChange is the body of PATCH /api/v1/orders/:id/status.
type StatusChange struct {
	Status string `json:"status"`
}

// NewOrder is the body of POST /api/v1/orders. An empty ID is replaced by a
// generated one.
type NewOrder struct {
	ID       string          `json:"id"`
	Customer string          `json:"customer"`
	UserID   string          `json:"userId"`
	Items    []OrderItem     `json:"items"`
	Total    decimal.Decimal `json:"total"`
}

type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID                 string          `json:"id"`
	Customer           string          `json:"customer"`
	UserID             string          `json:"userId"`
	Items              []OrderItem     `json:"items"`
	Total              decimal.Decimal `json:"total"`
	Status             order.Status    `json:"status"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
	DeliveredAt        *time.Time      `json:"deliveredAt,omitempty"`
	AllowedTransitions []order.Status  `json:"allowedTransitions"`
}

type AuditEntry struct {
	ID             string       `json:"id"`
	Action         string       `json:"action"`
	OrderID        string       `json:"orderId"`
	PreviousStatus order.Status `json:"previousStatus"`
	NewStatus      order.Status `json:"newStatus"`
	UpdatedBy      string       `json:"updatedBy"`
	Timestamp      time.Time    `json:"timestamp"`
}

type BacklogEntry struct {
	Status order.Status `json:"status"`
	Count  int          `json:"count"`
}

func toOrder(o queries.OrderResponse) Order {
	items := make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItem{Name: item.Name, Quantity: item.Quantity}
	}

	allowed := o.AllowedTransitions
	if allowed == nil {
		allowed = []order.Status{}
	}

	return Order{
		ID:                 o.ID.String(),
		Customer:           o.Customer,
		UserID:             o.UserID,
		Items:              items,
		Total:              o.Total,
		Status:             o.Status,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		DeliveredAt:        o.DeliveredAt,
		AllowedTransitions: allowed,
	}
}

func toAuditEntry(e queries.AuditEntryResponse) AuditEntry {
	return AuditEntry{
		ID:             e.ID,
		Action:         e.Action,
		OrderID:        e.OrderID.String(),
		PreviousStatus: e.PreviousStatus,
		NewStatus:      e.NewStatus,
		UpdatedBy:      e.UpdatedBy,
		Timestamp:      e.Timestamp,
	}
}
