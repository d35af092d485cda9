// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"momoadmin/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles store transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ServerClock exposes the store's time so that timestamps written in one
	// transaction share a single clock.
	ServerClock interface {
		ServerTime(ctx context.Context) (time.Time, error)
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AuditLogRepoFactory provides access to the audit log within a transaction.
	AuditLogRepoFactory interface {
		AuditLogRepository() ports.AuditLogRepository
	}

	// UoW manages transactions that change an order and append to its audit log atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   now, err := uow.ServerTime(ctx)
	//   orderRepo := uow.OrderRepository()
	//   auditRepo := uow.AuditLogRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ServerClock
		OrderRepoFactory
		AuditLogRepoFactory
	}

	// UoWFactory creates new unit of work instances for order status changes.
	UoWFactory interface {
		Create() UoW
	}
)
