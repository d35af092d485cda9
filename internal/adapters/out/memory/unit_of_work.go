package memory

import (
	"context"
	"time"

	"momoadmin/internal/core/domain/model/audit"
	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/core/ports"
	"momoadmin/internal/pkg/errs"
)

// UnitOfWorkFactory creates transactions against one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork is an optimistic transaction. Reads see committed state (or this
// transaction's own buffered writes). Writes become visible only on Commit.
type UnitOfWork struct {
	store  *Store
	active bool

	// readVersions holds the version each touched order had when first read;
	// -1 means the order did not exist.
	readVersions map[order.ID]int64
	updates      map[order.ID]order.Snapshot
	audit        []audit.Entry
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.active = true
	u.readVersions = make(map[order.ID]int64)
	u.updates = make(map[order.ID]order.Snapshot)
	u.audit = nil
	return nil
}

// Commit applies buffered writes if no touched order changed since it was read.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	defer u.reset()

	if err := ctx.Err(); err != nil {
		return err
	}

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, seen := range u.readVersions {
		current, ok := s.orders[id]
		switch {
		case !ok && seen != -1:
			return errs.NewConcurrencyConflictError("order", id)
		case ok && current.Version != seen:
			return errs.NewConcurrencyConflictError("order", id)
		}
	}

	for id, snap := range u.updates {
		s.orders[id] = snap
	}
	s.audit = append(s.audit, u.audit...)
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.reset()
	return nil
}

func (u *UnitOfWork) ServerTime(_ context.Context) (time.Time, error) {
	return u.store.now(), nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: u}
}

func (u *UnitOfWork) AuditLogRepository() ports.AuditLogRepository {
	return &auditLogRepository{uow: u}
}

func (u *UnitOfWork) reset() {
	u.active = false
	u.readVersions = nil
	u.updates = nil
	u.audit = nil
}

// observe records the committed version of id the first time the transaction touches it.
func (u *UnitOfWork) observe(id order.ID) (order.Snapshot, bool) {
	snap, ok := u.store.load(id)
	if _, seen := u.readVersions[id]; !seen && u.active {
		if ok {
			u.readVersions[id] = snap.Version
		} else {
			u.readVersions[id] = -1
		}
	}
	return snap, ok
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !r.uow.active {
		return ErrNoActiveTransaction
	}

	id := aggregate.ID()
	if _, pending := r.uow.updates[id]; pending {
		return errs.NewConcurrencyConflictError("order", id)
	}
	if _, exists := r.uow.observe(id); exists {
		return errs.NewConcurrencyConflictError("order", id)
	}

	r.uow.updates[id] = aggregate.Snapshot()
	return nil
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !r.uow.active {
		return ErrNoActiveTransaction
	}

	// Compare against what this transaction saw; concurrent commits made after
	// the first read are detected by Commit.
	id := aggregate.ID()
	var expected int64
	if buffered, ok := r.uow.updates[id]; ok {
		expected = buffered.Version
	} else {
		_, exists := r.uow.observe(id)
		expected = r.uow.readVersions[id]
		if expected < 0 {
			if !exists {
				return errs.NewObjectNotFoundError("order", id)
			}
			return errs.NewConcurrencyConflictError("order", id)
		}
	}
	if expected != aggregate.Version() {
		return errs.NewConcurrencyConflictError("order", id)
	}

	aggregate.MarkPersisted()
	r.uow.updates[id] = aggregate.Snapshot()
	return nil
}

func (r *orderRepository) Get(_ context.Context, id order.ID) (*order.Order, error) {
	if snap, ok := r.uow.updates[id]; ok {
		return order.RestoreOrder(snap)
	}

	snap, ok := r.uow.observe(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreOrder(snap)
}

type auditLogRepository struct {
	uow *UnitOfWork
}

func (r *auditLogRepository) Append(_ context.Context, entry audit.Entry) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	r.uow.audit = append(r.uow.audit, entry)
	return nil
}
