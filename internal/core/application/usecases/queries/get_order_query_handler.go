package queries

import (
	"context"

	"momoadmin/internal/core/ports"
)

type GetOrderQueryHandler struct {
	readModel ports.OrderReadModel
}

func NewGetOrderQueryHandler(readModel ports.OrderReadModel) GetOrderQueryHandler {
	return GetOrderQueryHandler{readModel: readModel}
}

// Handle returns *errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	o, err := h.readModel.GetOrder(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}
	return NewOrderResponse(o), nil
}
