// Package postgres provides the GORM-based Unit of Work and read model for orders
// and their audit log.
//
// A unit of work wraps one database transaction. Order updates are conditional on
// the row version read earlier in the same transaction, so two admins changing the
// same order cannot both commit: the second writer's UPDATE matches no row (or
// PostgreSQL aborts it with a serialization failure) and the repository reports
// *errs.ConcurrencyConflictError.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	o, err := uow.OrderRepository().Get(ctx, "4582")
//	now, err := uow.ServerTime(ctx)
//	err = o.TransitionTo(order.OutForDelivery, now)
//	err = uow.OrderRepository().Update(ctx, o)
//	err = uow.AuditLogRepository().Append(ctx, entry)
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns at most one open transaction
//   - Multiple goroutines must use separate UnitOfWork instances
//   - Keep transactions short; the conditional update holds a row lock until commit
package postgres

import (
	"context"
	"time"

	"momoadmin/internal/adapters/out/postgres/auditrepo"
	"momoadmin/internal/adapters/out/postgres/orderrepo"
	"momoadmin/internal/adapters/out/postgres/pgerrs"
	"momoadmin/internal/core/ports"
	"momoadmin/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the order and
// audit log repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a transaction. Calling Begin again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. PostgreSQL serialization failures and
// deadlocks are reported as *errs.ConcurrencyConflictError.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if pgerrs.IsConflict(err) {
		return errs.NewConcurrencyConflictErrorWithCause("transaction", "commit", err)
	}
	return err
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction when
// there is nothing to roll back, which callers deferring Rollback after Commit ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// ServerTime returns the database clock at the start of the current statement.
// Callers take it once per transaction and stamp every write with that value;
// unlike now() it is not pinned to BEGIN, so a transaction that waited on a
// lock still records when its change was made.
func (uow *GormUnitOfWork) ServerTime(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := uow.conn().WithContext(ctx).Raw("SELECT statement_timestamp()").Scan(&now).Error; err != nil {
		return time.Time{}, err
	}
	return now.UTC(), nil
}

// OrderRepository returns a repository bound to the open transaction, or to the
// pool when no transaction is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// AuditLogRepository returns a repository bound to the open transaction, or to
// the pool when no transaction is open.
func (uow *GormUnitOfWork) AuditLogRepository() ports.AuditLogRepository {
	return auditrepo.NewGormAuditLogRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
