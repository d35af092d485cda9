package queries

import (
	"context"

	"momoadmin/internal/core/ports"
)

type GetOrderAuditLogQueryHandler struct {
	readModel ports.OrderReadModel
}

func NewGetOrderAuditLogQueryHandler(readModel ports.OrderReadModel) GetOrderAuditLogQueryHandler {
	return GetOrderAuditLogQueryHandler{readModel: readModel}
}

// Handle first checks that the order exists so that an unknown id is reported as
// not found rather than as an empty history.
func (h GetOrderAuditLogQueryHandler) Handle(
	ctx context.Context,
	query GetOrderAuditLogQuery,
) ([]AuditEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.readModel.GetOrder(ctx, query.OrderID()); err != nil {
		return nil, err
	}

	entries, err := h.readModel.ListAuditEntries(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	response := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, AuditEntryResponse{
			ID:             e.ID().String(),
			Action:         e.Action(),
			OrderID:        e.OrderID(),
			PreviousStatus: e.PreviousStatus(),
			NewStatus:      e.NewStatus(),
			UpdatedBy:      e.UpdatedBy(),
			Timestamp:      e.Timestamp(),
		})
	}
	return response, nil
}
