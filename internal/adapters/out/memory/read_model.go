package memory

import (
	"context"
	"slices"
	"strings"

	"momoadmin/internal/core/domain/model/audit"
	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/core/ports"
	"momoadmin/internal/pkg/errs"
)

// ReadModel answers admin queries from committed state.
type ReadModel struct {
	store *Store
}

var _ ports.OrderReadModel = (*ReadModel)(nil)

func NewReadModel(store *Store) *ReadModel {
	return &ReadModel{store: store}
}

func (m *ReadModel) ListOrders(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	snaps := m.store.snapshots()
	slices.SortFunc(snaps, func(a, b order.Snapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})

	result := make([]*order.Order, 0, len(snaps))
	for _, snap := range snaps {
		if filter.Status != order.Unknown && snap.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(string(snap.ID)), search) &&
			!strings.Contains(strings.ToLower(snap.Customer), search) {
			continue
		}

		o, err := order.RestoreOrder(snap)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, nil
}

func (m *ReadModel) GetOrder(_ context.Context, id order.ID) (*order.Order, error) {
	snap, ok := m.store.load(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreOrder(snap)
}

func (m *ReadModel) ListAuditEntries(_ context.Context, id order.ID) ([]audit.Entry, error) {
	entries := m.store.auditEntries(id)
	slices.SortStableFunc(entries, func(a, b audit.Entry) int {
		return a.Timestamp().Compare(b.Timestamp())
	})
	return entries, nil
}

func (m *ReadModel) CountByStatus(_ context.Context) (map[order.Status]int, error) {
	counts := make(map[order.Status]int)
	for _, snap := range m.store.snapshots() {
		counts[snap.Status]++
	}
	return counts, nil
}
