// Package services provides domain services that do not belong to a single aggregate.
//
// The package includes:
//   - StatusNotificationComposer: decides whether a status change notifies the
//     customer and builds the message
package services
