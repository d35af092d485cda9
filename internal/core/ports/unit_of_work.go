package ports

import (
	"context"
	"time"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a store transaction: snapshot reads, buffered or
// transactional writes, and a conditional commit that fails on conflicting writers.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Conflicts detected at commit return *errs.ConcurrencyConflictError.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ServerTime returns the store's clock for timestamps written in this transaction.
	ServerTime(ctx context.Context) (time.Time, error)

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// AuditLogRepository returns an AuditLogRepository bound to the current transaction.
	AuditLogRepository() AuditLogRepository
}
