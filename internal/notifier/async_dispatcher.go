// Package notifier delivers customer notifications off the request path.
//
// AsyncDispatcher owns a bounded queue and a fixed pool of workers. Enqueue never
// blocks: when the queue is full the notification is dropped and logged. Each
// delivery gets its own timeout and a context that is detached from the request
// that produced it, so a slow transport cannot delay or fail a status change.
//
// Usage:
//
//	d := notifier.NewAsyncDispatcher(transport, notifier.Config{Workers: 4, QueueSize: 256, Timeout: 5 * time.Second}, logger)
//	d.Start()
//	defer d.Close(shutdownCtx)
//
//	d.Enqueue("4582", msg)
package notifier

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"momoadmin/internal/core/domain/model/notification"
	"momoadmin/internal/core/ports"
)

// ErrDispatcherClosed is returned by Close when called twice.
var ErrDispatcherClosed = errors.New("notification dispatcher already closed")

type Config struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

// DefaultConfig returns 2 workers, room for 128 pending notifications and a 5s
// per-delivery timeout.
func DefaultConfig() Config {
	return Config{Workers: 2, QueueSize: 128, Timeout: 5 * time.Second}
}

type job struct {
	orderID string
	msg     notification.Notification
}

// AsyncDispatcher implements ports.NotificationQueue on top of a NotificationDispatcher.
type AsyncDispatcher struct {
	transport ports.NotificationDispatcher
	cfg       Config
	logger    *slog.Logger

	queue chan job
	wg    sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool
}

var _ ports.NotificationQueue = (*AsyncDispatcher)(nil)

func NewAsyncDispatcher(transport ports.NotificationDispatcher, cfg Config, logger *slog.Logger) *AsyncDispatcher {
	defaults := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = defaults.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaults.QueueSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}

	return &AsyncDispatcher{
		transport: transport,
		cfg:       cfg,
		logger:    logger.With("component", "notification_dispatcher"),
		queue:     make(chan job, cfg.QueueSize),
	}
}

// Start launches the workers. Calling Start more than once has no effect.
func (d *AsyncDispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.closed {
		return
	}
	d.started = true

	for range d.cfg.Workers {
		d.wg.Add(1)
		go d.work()
	}
	d.logger.Info("notification dispatcher started", "workers", d.cfg.Workers, "queue_size", d.cfg.QueueSize)
}

// Enqueue schedules msg for delivery and returns immediately.
func (d *AsyncDispatcher) Enqueue(orderID string, msg notification.Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("notification dropped, dispatcher is closed", "order_id", orderID, "user_id", msg.UserID)
		return
	}

	select {
	case d.queue <- job{orderID: orderID, msg: msg}:
	default:
		d.logger.Warn("notification dropped, queue is full", "order_id", orderID, "user_id", msg.UserID)
	}
}

// Close stops accepting notifications and waits for queued ones to be delivered
// or for ctx to expire, whichever comes first.
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.logger.Warn("notification dispatcher stopped before the queue drained", "pending", len(d.queue))
		return ctx.Err()
	}
}

func (d *AsyncDispatcher) work() {
	defer d.wg.Done()

	for j := range d.queue {
		d.deliver(j)
	}
}

func (d *AsyncDispatcher) deliver(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout)
	defer cancel()

	if err := d.transport.Dispatch(ctx, j.msg); err != nil {
		d.logger.ErrorContext(ctx, "failed to send order notification",
			"order_id", j.orderID,
			"user_id", j.msg.UserID,
			"error", err,
		)
		return
	}
	d.logger.DebugContext(ctx, "order notification sent", "order_id", j.orderID, "user_id", j.msg.UserID)
}
