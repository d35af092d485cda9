package queries

import (
	"context"

	"momoadmin/internal/core/ports"
)

// GetOrdersQueryHandler serves the order table from the read model.
type GetOrdersQueryHandler struct {
	readModel ports.OrderReadModel
}

func NewGetOrdersQueryHandler(readModel ports.OrderReadModel) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{readModel: readModel}
}

// Handle returns matching orders sorted by creation time, newest first.
// An empty result is an empty slice, never nil.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.readModel.ListOrders(ctx, ports.OrderFilter{
		Status: query.Status(),
		Search: query.Search(),
	})
	if err != nil {
		return nil, err
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, NewOrderResponse(o))
	}
	return response, nil
}
