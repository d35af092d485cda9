package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"momoadmin/internal/core/domain/model/audit"
	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/core/domain/services"
	"momoadmin/internal/core/ports"
	"momoadmin/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how often a transition is re-run after losing a commit race.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy allows three attempts starting at 20ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 20 * time.Millisecond,
		MaxInterval:     200 * time.Millisecond,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	attempts := max(p.MaxAttempts, 1)

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx)
}

// TransitionOrderStatusCommandHandler is the order status workflow engine.
// Each attempt reads the order, checks the transition graph, writes the new status
// and one audit entry, and commits, all in one unit of work. Only after a commit
// succeeds is the customer notification handed to the asynchronous queue, so a
// retried attempt never sends a second notification.
//
// Example:
//
//	handler := NewTransitionOrderStatusCommandHandler(uowFactory, notifier, DefaultRetryPolicy(), logger)
//	updated, err := handler.Handle(ctx, cmd)
//	var invalid *order.InvalidTransitionError
//	switch {
//	case errors.Is(err, ErrOrderNotFound):
//	    // 404
//	case errors.As(err, &invalid):
//	    // 400, show invalid.Current and invalid.Requested
//	case errors.Is(err, ErrStoreConflict):
//	    // 409, retry later
//	}
type TransitionOrderStatusCommandHandler struct {
	uowFactory    UoWFactory
	notifications ports.NotificationQueue
	composer      services.StatusNotificationComposer
	retry         RetryPolicy
	logger        *slog.Logger
}

// NewTransitionOrderStatusCommandHandler creates the workflow engine.
func NewTransitionOrderStatusCommandHandler(
	uowFactory UoWFactory,
	notifications ports.NotificationQueue,
	retry RetryPolicy,
	logger *slog.Logger,
) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory:    uowFactory,
		notifications: notifications,
		composer:      services.NewStatusNotificationComposer(),
		retry:         retry,
		logger:        logger.With("component", "order_status_workflow"),
	}
}

// Handle applies the command and returns the committed order.
//
// Errors:
//   - ErrOrderNotFound (joined with errs.ErrObjectNotFound) when the order does not exist
//   - *order.InvalidTransitionError when the graph forbids the change
//   - *StoreConflictError when every attempt lost to a concurrent writer
//
// Not-found and invalid-transition failures are never retried.
func (h TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var (
		updated  *order.Order
		previous order.Status
		attempts int
	)

	operation := func() error {
		attempts++
		o, prev, err := h.apply(ctx, cmd)
		if err == nil {
			updated, previous = o, prev
			return nil
		}
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			return err
		}
		return backoff.Permanent(err)
	}

	onConflict := func(err error, wait time.Duration) {
		h.logger.WarnContext(ctx, "order status commit conflicted, retrying",
			"order_id", cmd.OrderID(),
			"requested_status", cmd.Status().String(),
			"attempt", attempts,
			"backoff", wait,
			"error", err,
		)
	}

	if err := backoff.RetryNotify(operation, h.retry.backOff(ctx), onConflict); err != nil {
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			return nil, NewStoreConflictError(cmd.OrderID(), attempts, err)
		}
		return nil, err
	}

	h.logger.InfoContext(ctx, "order status updated",
		"order_id", updated.ID(),
		"previous_status", previous.String(),
		"new_status", updated.Status().String(),
		"updated_by", cmd.ActorID(),
		"attempts", attempts,
	)

	msg, ok, err := h.composer.Compose(updated)
	switch {
	case err != nil:
		h.logger.ErrorContext(ctx, "order notification not sent",
			"order_id", updated.ID(),
			"user_id", updated.UserID(),
			"status", updated.Status().String(),
			"error", err,
		)
	case ok:
		h.notifications.Enqueue(updated.ID().String(), msg)
	}

	return updated, nil
}

// apply runs one attempt inside its own unit of work.
func (h TransitionOrderStatusCommandHandler) apply(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
) (*order.Order, order.Status, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, order.Unknown, fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	}
	if err != nil {
		return nil, order.Unknown, err
	}

	previous := o.Status()
	if !previous.CanTransitionTo(cmd.Status()) {
		return nil, previous, order.NewInvalidTransitionError(o.ID(), previous, cmd.Status())
	}

	now, err := uow.ServerTime(ctx)
	if err != nil {
		return nil, previous, err
	}

	if err = o.TransitionTo(cmd.Status(), now); err != nil {
		return nil, previous, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, previous, err
	}

	entry, err := audit.NewOrderStatusUpdatedEntry(o.ID(), previous, o.Status(), cmd.ActorID(), now)
	if err != nil {
		return nil, previous, err
	}

	if err = uow.AuditLogRepository().Append(ctx, entry); err != nil {
		return nil, previous, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, previous, err
	}

	return o, previous, nil
}
