package order

import (
	"errors"
	"fmt"
	"strings"

	"momoadmin/internal/pkg/errs"
)

// Item is one line of an order: a menu item name and how many were ordered.
type Item struct {
	name     string
	quantity int
}

// NewItem validates that the name is present and the quantity positive.
func NewItem(name string, quantity int) (Item, error) {
	var problems []error
	if strings.TrimSpace(name) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item name"))
	}
	if quantity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"item quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		))
	}
	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}
	return Item{name: name, quantity: quantity}, nil
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Quantity() int {
	return i.quantity
}
