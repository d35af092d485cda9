package ports

import (
	"context"

	"momoadmin/internal/core/domain/model/notification"
)

// NotificationDispatcher delivers a push notification out of band. Delivery is
// best effort; callers only log the returned error.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, msg notification.Notification) error
}

// NotificationQueue accepts notifications for asynchronous delivery after a
// transaction has committed. Enqueue never blocks on delivery.
type NotificationQueue interface {
	Enqueue(orderID string, msg notification.Notification)
}
