package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"momoadmin/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// ID is the opaque, store-assigned order identifier (for example "4582").
type ID string

// NewID trims surrounding whitespace and a leading "#" as used in admin displays.
func NewID(raw string) (ID, error) {
	id := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if id == "" {
		return "", errs.NewValueIsRequiredError("order id")
	}
	return ID(id), nil
}

func (id ID) String() string {
	return string(id)
}

// Snapshot is a plain copy of every order field. It is used to restore orders
// from storage and to hand read-only views to adapters.
type Snapshot struct {
	ID          ID
	Customer    string
	UserID      string
	Items       []Item
	Total       decimal.Decimal
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeliveredAt *time.Time
	Version     int64
}

// Order is the aggregate root for one customer purchase.
//
// Order follows these invariants:
//   - id and owning user are always present
//   - total is never negative
//   - status only changes along the edges returned by Status.AllowedTransitions
//   - deliveredAt is set if and only if status is Delivered
//
// Orders are created by checkout in Placed or Pending, changed only through
// TransitionTo, and never deleted.
type Order struct {
	id          ID
	customer    string
	userID      string
	items       []Item
	total       decimal.Decimal
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
	deliveredAt *time.Time

	// version is the optimistic concurrency token of the stored document.
	version int64

	isConstructed bool
}

// NewOrder creates a freshly checked-out order. The initial status must be
// Placed or Pending.
//
// Example:
//
//	items := []order.Item{mustItem("Chicken Momo", 2)}
//	o, err := order.NewOrder("4582", "Asha", "user-17", items, decimal.NewFromFloat(18.5), order.Placed, now)
func NewOrder(
	id ID,
	customer string,
	userID string,
	items []Item,
	total decimal.Decimal,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	if status != Placed && status != Pending {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid initial status", status),
		)
	}

	return RestoreOrder(Snapshot{
		ID:        id,
		Customer:  customer,
		UserID:    userID,
		Items:     items,
		Total:     total,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
}

// RestoreOrder rebuilds an order from persisted state, re-checking every invariant.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		customer:      s.Customer,
		updatedAt:     s.UpdatedAt,
		version:       s.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setUserID(s.UserID),
		o.setItems(s.Items),
		o.setTotal(s.Total),
		o.setCreatedAt(s.CreatedAt),
		o.setStatus(s.Status, s.DeliveredAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() ID {
	return o.id
}

func (o *Order) Customer() string {
	return o.customer
}

// UserID returns the owning customer account; notifications are addressed to it.
func (o *Order) UserID() string {
	return o.userID
}

func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

func (o *Order) Total() decimal.Decimal {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// DeliveredAt returns nil unless the order is Delivered.
func (o *Order) DeliveredAt() *time.Time {
	if o.deliveredAt == nil {
		return nil
	}
	at := *o.deliveredAt
	return &at
}

func (o *Order) Version() int64 {
	return o.version
}

// AllowedTransitions returns the statuses the order may move to next.
func (o *Order) AllowedTransitions() []Status {
	return o.status.AllowedTransitions()
}

// TransitionTo moves the order to target, stamping updatedAt (and deliveredAt for
// Delivered) with at, which should be the store's server time.
//
// Returns an *InvalidTransitionError when target is not reachable from the
// current status, including every attempt to leave a terminal status.
func (o *Order) TransitionTo(target Status, at time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("transition time")
	}
	if !o.status.CanTransitionTo(target) {
		return NewInvalidTransitionError(o.id, o.status, target)
	}

	o.status = target
	o.updatedAt = at
	if target == Delivered {
		deliveredAt := at
		o.deliveredAt = &deliveredAt
	}
	return nil
}

// MarkPersisted advances the concurrency version after a successful conditional write.
func (o *Order) MarkPersisted() {
	o.version++
}

// Snapshot copies the current state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:          o.id,
		Customer:    o.customer,
		UserID:      o.userID,
		Items:       o.Items(),
		Total:       o.total,
		Status:      o.status,
		CreatedAt:   o.createdAt,
		UpdatedAt:   o.updatedAt,
		DeliveredAt: o.DeliveredAt(),
		Version:     o.version,
	}
}

func (o *Order) setID(id ID) error {
	if strings.TrimSpace(string(id)) == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errs.NewValueIsRequiredError("user id")
	}
	o.userID = userID
	return nil
}

func (o *Order) setItems(items []Item) error {
	for i, item := range items {
		if item.name == "" || item.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %d is not constructed", i))
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total is invalid", fmt.Errorf("%s is negative", total))
	}
	o.total = total
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	if o.updatedAt.IsZero() {
		o.updatedAt = createdAt
	}
	return nil
}

func (o *Order) setStatus(status Status, deliveredAt *time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if (status == Delivered) != (deliveredAt != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivered at",
			fmt.Errorf("delivery time must be set exactly when status is Delivered, status is %s", status),
		)
	}
	o.status = status
	if deliveredAt != nil {
		at := *deliveredAt
		o.deliveredAt = &at
	}
	return nil
}
