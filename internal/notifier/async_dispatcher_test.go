package notifier_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"momoadmin/internal/core/domain/model/notification"
	"momoadmin/internal/notifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransport struct{ mock.Mock }

func (m *MockTransport) Dispatch(ctx context.Context, msg notification.Notification) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// funcTransport lets a test control how long a delivery takes.
type funcTransport func(ctx context.Context, msg notification.Notification) error

func (f funcTransport) Dispatch(ctx context.Context, msg notification.Notification) error {
	return f(ctx, msg)
}

// syncBuffer is a bytes.Buffer safe for concurrent log writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

var delivered = notification.Notification{
	UserID: "user-17",
	Title:  "Order Update",
	Body:   "Your order #4582 has been delivered!",
}

func TestAsyncDispatcher_DeliversQueuedNotifications(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Dispatch", mock.Anything, delivered).Return(nil).Once()

	logger, _ := newLogger()
	d := notifier.NewAsyncDispatcher(transport, notifier.Config{Workers: 1, QueueSize: 4, Timeout: time.Second}, logger)
	d.Start()

	d.Enqueue("4582", delivered)
	require.NoError(t, d.Close(t.Context()))

	transport.AssertExpectations(t)
}

func TestAsyncDispatcher_FailureIsLoggedNotPropagated(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Dispatch", mock.Anything, delivered).Return(errors.New("fcm unavailable")).Once()

	logger, logs := newLogger()
	d := notifier.NewAsyncDispatcher(transport, notifier.Config{Workers: 1, QueueSize: 4, Timeout: time.Second}, logger)
	d.Start()

	d.Enqueue("4582", delivered)
	require.NoError(t, d.Close(t.Context()))

	out := logs.String()
	assert.Contains(t, out, "failed to send order notification")
	assert.Contains(t, out, "order_id=4582")
	assert.Contains(t, out, "user_id=user-17")
	assert.Contains(t, out, "fcm unavailable")
}

func TestAsyncDispatcher_EachDeliveryHasATimeout(t *testing.T) {
	var deadlineSeen bool
	transport := funcTransport(func(ctx context.Context, _ notification.Notification) error {
		_, deadlineSeen = ctx.Deadline()
		<-ctx.Done()
		return ctx.Err()
	})

	logger, logs := newLogger()
	d := notifier.NewAsyncDispatcher(transport, notifier.Config{Workers: 1, QueueSize: 1, Timeout: 20 * time.Millisecond}, logger)
	d.Start()

	d.Enqueue("4582", delivered)
	require.NoError(t, d.Close(t.Context()))

	assert.True(t, deadlineSeen)
	assert.Contains(t, logs.String(), "context deadline exceeded")
}

func TestAsyncDispatcher_FullQueueDropsWithoutBlocking(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	transport := funcTransport(func(context.Context, notification.Notification) error {
		started <- struct{}{}
		<-release
		return nil
	})

	logger, logs := newLogger()
	d := notifier.NewAsyncDispatcher(transport, notifier.Config{Workers: 1, QueueSize: 1, Timeout: time.Second}, logger)
	d.Start()

	d.Enqueue("1", delivered) // taken by the worker
	<-started
	d.Enqueue("2", delivered) // fills the queue

	done := make(chan struct{})
	go func() {
		d.Enqueue("3", delivered) // dropped
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	close(release)
	require.NoError(t, d.Close(t.Context()))
	assert.Contains(t, logs.String(), "notification dropped, queue is full")
	assert.Contains(t, logs.String(), "order_id=3")
}

func TestAsyncDispatcher_EnqueueAfterCloseIsDropped(t *testing.T) {
	transport := new(MockTransport)
	logger, logs := newLogger()
	d := notifier.NewAsyncDispatcher(transport, notifier.DefaultConfig(), logger)
	d.Start()
	require.NoError(t, d.Close(t.Context()))

	d.Enqueue("4582", delivered)

	transport.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	assert.Contains(t, logs.String(), "dispatcher is closed")
	require.ErrorIs(t, d.Close(t.Context()), notifier.ErrDispatcherClosed)
}

func TestAsyncDispatcher_CloseHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	transport := funcTransport(func(context.Context, notification.Notification) error {
		<-release
		return nil
	})

	logger, _ := newLogger()
	d := notifier.NewAsyncDispatcher(transport, notifier.Config{Workers: 1, QueueSize: 1, Timeout: time.Minute}, logger)
	d.Start()
	d.Enqueue("4582", delivered)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
}
