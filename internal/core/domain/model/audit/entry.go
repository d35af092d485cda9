package audit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"momoadmin/internal/core/domain/model/kernel"
	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/pkg/errs"
)

// ActionOrderStatusUpdated is the only action recorded today.
const ActionOrderStatusUpdated = "ORDER_STATUS_UPDATED"

// Entry is an append-only audit record. It has no setters; once created it
// is only ever persisted and read back.
type Entry struct {
	id             kernel.UUID
	action         string
	orderID        order.ID
	previousStatus order.Status
	newStatus      order.Status
	updatedBy      string
	timestamp      time.Time
}

// NewOrderStatusUpdatedEntry records that actorID moved orderID from previous to next at the given time.
func NewOrderStatusUpdatedEntry(
	orderID order.ID,
	previous order.Status,
	next order.Status,
	actorID string,
	at time.Time,
) (Entry, error) {
	return RestoreEntry(kernel.NewUUID(), ActionOrderStatusUpdated, orderID, previous, next, actorID, at)
}

// RestoreEntry rebuilds an entry read from storage.
func RestoreEntry(
	id kernel.UUID,
	action string,
	orderID order.ID,
	previous order.Status,
	next order.Status,
	actorID string,
	at time.Time,
) (Entry, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if action != ActionOrderStatusUpdated {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a known action", action)))
	}
	if orderID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("order id"))
	}
	if err := previous.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := next.Validate(); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(actorID) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("updated by"))
	}
	if at.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("timestamp"))
	}
	if err := errors.Join(problems...); err != nil {
		return Entry{}, err
	}

	return Entry{
		id:             id,
		action:         action,
		orderID:        orderID,
		previousStatus: previous,
		newStatus:      next,
		updatedBy:      actorID,
		timestamp:      at,
	}, nil
}

func (e Entry) ID() kernel.UUID {
	return e.id
}

func (e Entry) Action() string {
	return e.action
}

func (e Entry) OrderID() order.ID {
	return e.orderID
}

func (e Entry) PreviousStatus() order.Status {
	return e.previousStatus
}

func (e Entry) NewStatus() order.Status {
	return e.newStatus
}

// UpdatedBy is the authenticated admin that requested the change.
func (e Entry) UpdatedBy() string {
	return e.updatedBy
}

func (e Entry) Timestamp() time.Time {
	return e.timestamp
}
