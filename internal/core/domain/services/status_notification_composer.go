package services

import (
	"fmt"

	"momoadmin/internal/core/domain/model/notification"
	"momoadmin/internal/core/domain/model/order"
)

// OrderUpdateTitle is the title of every order status notification.
const OrderUpdateTitle = "Order Update"

// StatusNotificationComposer builds the customer notification for an order that
// has just entered its current status.
//
// Example:
//
//	composer := NewStatusNotificationComposer()
//	msg, ok, err := composer.Compose(updatedOrder)
//	if err != nil {
//	    logger.Error("cannot build notification", "error", err)
//	} else if ok {
//	    dispatcher.Enqueue(updatedOrder.ID().String(), msg)
//	}
type StatusNotificationComposer struct{}

func NewStatusNotificationComposer() StatusNotificationComposer {
	return StatusNotificationComposer{}
}

// Compose returns false when the order's status does not notify (Placed, Pending).
// It returns an error when the order is not constructed or the message is incomplete.
func (StatusNotificationComposer) Compose(o *order.Order) (notification.Notification, bool, error) {
	if err := o.Validate(); err != nil {
		return notification.Notification{}, false, err
	}
	if !o.Status().IsNotifiable() {
		return notification.Notification{}, false, nil
	}

	var body string
	switch o.Status() {
	case order.Preparing:
		body = fmt.Sprintf("Your order #%s is being prepared!", o.ID())
	case order.OutForDelivery:
		body = fmt.Sprintf("Your order #%s is out for delivery!", o.ID())
	case order.Delivered:
		body = fmt.Sprintf("Your order #%s has been delivered!", o.ID())
	case order.Cancelled:
		body = fmt.Sprintf("Your order #%s has been cancelled.", o.ID())
	default:
		return notification.Notification{}, false, nil
	}

	msg, err := notification.New(o.UserID(), OrderUpdateTitle, body)
	if err != nil {
		return notification.Notification{}, false, fmt.Errorf("order %s: %w", o.ID(), err)
	}
	return msg, true, nil
}
