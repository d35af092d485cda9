package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition classifies every rejected status change.
var ErrInvalidTransition = errors.New("invalid order status transition")

// InvalidTransitionError carries the statuses involved in a rejected change so that
// callers can report both statuses.
type InvalidTransitionError struct {
	OrderID   ID
	Current   Status
	Requested Status
}

func NewInvalidTransitionError(orderID ID, current, requested Status) *InvalidTransitionError {
	return &InvalidTransitionError{OrderID: orderID, Current: current, Requested: requested}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change order %s from %s to %s", e.OrderID, e.Current, e.Requested)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
