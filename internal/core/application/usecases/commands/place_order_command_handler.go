package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/pkg/errs"
)

// ErrOrderAlreadyExists is returned when an order with the same id was placed before.
var ErrOrderAlreadyExists = errors.New("order already exists")

// PlaceOrderCommandHandler stores new orders in the Placed status, stamped with the
// store clock.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewPlaceOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "place_order"),
	}
}

// Handle persists the order. Placing an id twice yields ErrOrderAlreadyExists
// joined with errs.ErrConcurrencyConflict.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now, err := uow.ServerTime(ctx)
	if err != nil {
		return nil, err
	}

	placed, err := order.NewOrder(cmd.OrderID(), cmd.Customer(), cmd.UserID(), cmd.Items(), cmd.Total(), order.Placed, now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, alreadyExists(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, alreadyExists(err)
	}

	h.logger.InfoContext(ctx, "order placed", "order_id", placed.ID(), "user_id", placed.UserID())
	return placed, nil
}

func alreadyExists(err error) error {
	if errors.Is(err, errs.ErrConcurrencyConflict) {
		return fmt.Errorf("%w: %w", ErrOrderAlreadyExists, err)
	}
	return err
}
