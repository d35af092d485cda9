// Package memory is a versioned in-process document store for orders and their
// audit log. It backs local development and the workflow tests.
//
// Transactions buffer their writes. Commit re-checks, under the store mutex, that
// every order read or written by the transaction still has the version it saw;
// if any changed, nothing is applied and *errs.ConcurrencyConflictError is returned.
package memory

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"momoadmin/internal/core/domain/model/audit"
	"momoadmin/internal/core/domain/model/order"
)

// ErrNoActiveTransaction is returned by Commit and Rollback outside Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// Clock returns the store's current time.
type Clock func() time.Time

// Store holds committed documents. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	orders map[order.ID]order.Snapshot
	audit  []audit.Entry
	clock  Clock
}

// NewStore creates an empty store. A nil clock uses time.Now in UTC.
func NewStore(clock Clock) *Store {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Store{
		orders: make(map[order.ID]order.Snapshot),
		clock:  clock,
	}
}

// Seed stores orders as they are, overwriting documents with the same id.
// It bypasses transactions and is meant for fixtures and imports.
func (s *Store) Seed(_ context.Context, orders ...*order.Order) error {
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range orders {
		s.orders[o.ID()] = o.Snapshot()
	}
	return nil
}

func (s *Store) now() time.Time {
	return s.clock()
}

func (s *Store) load(id order.ID) (order.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.orders[id]
	return snap, ok
}

func (s *Store) snapshots() []order.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]order.Snapshot, 0, len(s.orders))
	for _, snap := range s.orders {
		out = append(out, snap)
	}
	return out
}

func (s *Store) auditEntries(id order.ID) []audit.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.DeleteFunc(slices.Clone(s.audit), func(e audit.Entry) bool {
		return e.OrderID() != id
	})
}
