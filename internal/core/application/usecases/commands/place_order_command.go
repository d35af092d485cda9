package commands

import (
	"errors"
	"strings"

	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/pkg/errs"
	"momoadmin/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand records a checked-out order so that admins can work on it.
//
// Example:
//
//	items := []order.Item{chickenMomo, vegMomo}
//	cmd, err := NewPlaceOrderCommand("4582", "Asha Gurung", "user-17", items, decimal.RequireFromString("18.50"))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	placed, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  order.ID
	customer string
	userID   string
	items    []order.Item
	total    decimal.Decimal

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the order data. Item and total rules are
// enforced again by the order itself when the handler builds it.
func NewPlaceOrderCommand(
	orderID string,
	customer string,
	userID string,
	items []order.Item,
	total decimal.Decimal,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setItems(items),
		cmd.setTotal(total),
	); err != nil {
		return PlaceOrderCommand{}, err
	}
	cmd.customer = strings.TrimSpace(customer)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() order.ID {
	return c.orderID
}

func (c PlaceOrderCommand) Customer() string {
	return c.customer
}

func (c PlaceOrderCommand) UserID() string {
	return c.userID
}

func (c PlaceOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c PlaceOrderCommand) Total() decimal.Decimal {
	return c.total
}

func (c *PlaceOrderCommand) setOrderID(raw string) error {
	id, err := order.NewID(raw)
	if err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *PlaceOrderCommand) setUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errs.NewValueIsRequiredError("userID")
	}
	c.userID = userID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *PlaceOrderCommand) setTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsInvalidError("total")
	}
	c.total = total
	return nil
}
