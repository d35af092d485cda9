// Package logsink is the notification transport used when no broker is
// configured: it records each notification as a structured log line.
package logsink

import (
	"context"
	"log/slog"

	"momoadmin/internal/core/domain/model/notification"
	"momoadmin/internal/core/ports"
)

type Dispatcher struct {
	logger *slog.Logger
}

var _ ports.NotificationDispatcher = (*Dispatcher)(nil)

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger.With("component", "notification_logsink")}
}

func (d *Dispatcher) Dispatch(ctx context.Context, msg notification.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.logger.InfoContext(ctx, "push notification",
		"user_id", msg.UserID,
		"title", msg.Title,
		"body", msg.Body,
	)
	return nil
}
