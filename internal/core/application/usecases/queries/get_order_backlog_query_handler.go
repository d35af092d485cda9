package queries

import (
	"context"

	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/core/ports"
)

// GetOrderBacklogQueryHandler reports the open workload for the backlog job.
type GetOrderBacklogQueryHandler struct {
	readModel ports.OrderReadModel
}

func NewGetOrderBacklogQueryHandler(readModel ports.OrderReadModel) GetOrderBacklogQueryHandler {
	return GetOrderBacklogQueryHandler{readModel: readModel}
}

// Handle returns one entry per non-terminal status in lifecycle order,
// including statuses with no orders.
func (h GetOrderBacklogQueryHandler) Handle(ctx context.Context, query GetOrderBacklogQuery) ([]BacklogEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts, err := h.readModel.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	backlog := make([]BacklogEntry, 0)
	for _, status := range order.AllStatuses() {
		if status.IsTerminal() {
			continue
		}
		backlog = append(backlog, BacklogEntry{Status: status, Count: counts[status]})
	}
	return backlog, nil
}
