package commands

import (
	"errors"
	"fmt"

	"momoadmin/internal/core/domain/model/order"
)

var (
	// ErrOrderNotFound is returned when the requested order does not exist at validation time.
	// It is joined with the repository's errs.ObjectNotFoundError.
	ErrOrderNotFound = errors.New("order not found")

	// ErrStoreConflict classifies transitions that kept losing to concurrent writers.
	ErrStoreConflict = errors.New("order was modified concurrently")
)

// StoreConflictError is returned after the retry budget for conflicting commits is spent.
// Callers may retry the whole request later.
type StoreConflictError struct {
	OrderID  order.ID
	Attempts int
	Cause    error
}

func NewStoreConflictError(orderID order.ID, attempts int, cause error) *StoreConflictError {
	return &StoreConflictError{OrderID: orderID, Attempts: attempts, Cause: cause}
}

func (e *StoreConflictError) Error() string {
	return fmt.Sprintf("%s: order %s, gave up after %d attempts: %v", ErrStoreConflict, e.OrderID, e.Attempts, e.Cause)
}

func (e *StoreConflictError) Unwrap() []error {
	return []error{ErrStoreConflict, e.Cause}
}
