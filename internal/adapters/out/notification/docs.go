// Package notification groups the transports that deliver customer push
// notifications. Each subpackage implements ports.NotificationDispatcher:
//
//   - rabbitmq publishes persistent JSON messages to a durable queue
//   - kafka writes JSON messages keyed by user id to a topic
//   - redis publishes JSON on the notifications:<userId> channel
//   - logsink only writes a structured log line (local development)
//
// All transports are called from notifier.AsyncDispatcher workers, never from
// the request that changed the order.
package notification
