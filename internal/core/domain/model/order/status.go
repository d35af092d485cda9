package order

import (
	"fmt"
	"slices"

	"momoadmin/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine whose transitions follow a fixed graph:
//
//	Placed           -> Pending, Preparing, Cancelled
//	Pending          -> Preparing, Cancelled
//	Preparing        -> Out for Delivery, Cancelled
//	Out for Delivery -> Delivered, Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the status set by checkout when the customer submits the order.
	Placed

	// Pending marks an order acknowledged by the restaurant but not yet in the kitchen.
	Pending

	// Preparing indicates the kitchen is working on the order.
	Preparing

	// OutForDelivery indicates the order has left the restaurant.
	OutForDelivery

	// Delivered is a terminal state reached when the customer received the order.
	Delivered

	// Cancelled is a terminal state reachable from every non-terminal status.
	Cancelled
)

// getStatusStrings returns the display and storage form of every valid status.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Placed:         "Placed",
		Pending:        "Pending",
		Preparing:      "Preparing",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// getTransitions is the adjacency table of the status graph. Target order is
// the order in which admin clients offer the choices.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Placed:         {Pending, Preparing, Cancelled},
		Pending:        {Preparing, Cancelled},
		Preparing:      {OutForDelivery, Cancelled},
		OutForDelivery: {Delivered, Cancelled},
		Delivered:      {},
		Cancelled:      {},
	}
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Placed, Pending, Preparing, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus converts the display form ("Out for Delivery") into a Status.
// Matching is exact; unknown strings yield a ValueIsInvalidError.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the six defined statuses.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the display form of the status, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// MarshalText encodes the status using its display form.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status from its display form.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// IsTerminal reports whether no transitions leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// AllowedTransitions returns the statuses reachable from s in one step.
// The result is a fresh slice; invalid statuses have no transitions.
func (s Status) AllowedTransitions() []Status {
	return slices.Clone(getTransitions()[s])
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(getTransitions()[s], target)
}

// IsNotifiable reports whether entering s sends the customer a push notification.
func (s Status) IsNotifiable() bool {
	switch s {
	case Preparing, OutForDelivery, Delivered, Cancelled:
		return true
	default:
		return false
	}
}
