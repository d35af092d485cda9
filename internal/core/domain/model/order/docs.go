// Package order provides the Order aggregate and its status state machine.
//
// The package includes:
//   - Order: the aggregate root holding identity, owner, items, total and lifecycle timestamps
//   - Status: a closed enumeration with an explicit adjacency table of legal transitions
//   - InvalidTransitionError: the typed rejection carrying current and requested statuses
//
// Key business rules:
//   - Orders enter the system in Placed or Pending and are never deleted
//   - Status moves only along the transition graph; Delivered and Cancelled are terminal
//   - deliveredAt is stamped exactly when an order becomes Delivered
package order
