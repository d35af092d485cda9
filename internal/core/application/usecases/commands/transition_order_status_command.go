package commands

import (
	"errors"
	"strings"

	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/pkg/errs"
	"momoadmin/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand requests that an order move to a new status on
// behalf of an authenticated admin.
//
// Example:
//
//	cmd, err := NewTransitionOrderStatusCommand("4582", order.OutForDelivery, adminID)
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//	updated, err := handler.Handle(ctx, cmd)
type TransitionOrderStatusCommand struct {
	orderID order.ID
	status  order.Status
	actorID string

	guard guard.ConstructorGuard
}

// NewTransitionOrderStatusCommand validates the order id, the requested status and
// the actor. The actor must be the verified identity of the caller; it has no default.
func NewTransitionOrderStatusCommand(
	orderID string,
	status order.Status,
	actorID string,
) (TransitionOrderStatusCommand, error) {
	cmd := TransitionOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setActorID(actorID),
	); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

func (c TransitionOrderStatusCommand) OrderID() order.ID {
	return c.orderID
}

// Status returns the requested target status.
func (c TransitionOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c TransitionOrderStatusCommand) ActorID() string {
	return c.actorID
}

func (c *TransitionOrderStatusCommand) setOrderID(raw string) error {
	id, err := order.NewID(raw)
	if err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *TransitionOrderStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *TransitionOrderStatusCommand) setActorID(actorID string) error {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return errs.NewValueIsRequiredError("actor id")
	}
	c.actorID = actorID
	return nil
}
