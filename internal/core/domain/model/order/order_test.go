package order_test

import (
	"errors"
	"testing"
	"time"

	"momoadmin/internal/core/domain/model/order"
	"momoadmin/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

func mustItem(t *testing.T, name string, quantity int) order.Item {
	t.Helper()
	item, err := order.NewItem(name, quantity)
	require.NoError(t, err)
	return item
}

func restoreInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	snapshot := order.Snapshot{
		ID:        "4582",
		Customer:  "Asha Gurung",
		UserID:    "user-17",
		Items:     []order.Item{mustItem(t, "Chicken Momo", 2), mustItem(t, "Thukpa", 1)},
		Total:     decimal.RequireFromString("24.50"),
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Version:   3,
	}
	if status == order.Delivered {
		snapshot.DeliveredAt = &createdAt
	}
	o, err := order.RestoreOrder(snapshot)
	require.NoError(t, err)
	return o
}

func TestNewID(t *testing.T) {
	t.Run("accepts plain and hash-prefixed ids", func(t *testing.T) {
		for _, raw := range []string{"4582", "#4582", "  #4582 "} {
			id, err := order.NewID(raw)
			require.NoError(t, err)
			assert.Equal(t, order.ID("4582"), id)
		}
	})

	t.Run("rejects empty ids", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "#"} {
			_, err := order.NewID(raw)
			require.ErrorIs(t, err, errs.ErrValueIsRequired)
		}
	})
}

func TestNewItem(t *testing.T) {
	t.Run("valid item", func(t *testing.T) {
		item, err := order.NewItem("Veg Momo", 3)

		require.NoError(t, err)
		assert.Equal(t, "Veg Momo", item.Name())
		assert.Equal(t, 3, item.Quantity())
	})

	t.Run("collects every problem", func(t *testing.T) {
		_, err := order.NewItem(" ", 0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewOrder(t *testing.T) {
	items := []order.Item{mustItem(t, "Chicken Momo", 2)}

	t.Run("creates order in Placed", func(t *testing.T) {
		o, err := order.NewOrder("4582", "Asha", "user-17", items, decimal.NewFromInt(12), order.Placed, createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.ID("4582"), o.ID())
		assert.Equal(t, order.Placed, o.Status())
		assert.Equal(t, createdAt, o.UpdatedAt())
		assert.Nil(t, o.DeliveredAt())
		assert.Equal(t, int64(0), o.Version())
	})

	t.Run("accepts Pending as initial status", func(t *testing.T) {
		o, err := order.NewOrder("4583", "", "user-17", items, decimal.Zero, order.Pending, createdAt)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("rejects later initial statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Preparing, order.OutForDelivery, order.Delivered, order.Cancelled} {
			_, err := order.NewOrder("4582", "Asha", "user-17", items, decimal.Zero, status, createdAt)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, status.String())
		}
	})

	t.Run("collects field errors", func(t *testing.T) {
		_, err := order.NewOrder("", "Asha", "", items, decimal.NewFromInt(-1), order.Placed, time.Time{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "order id")
		assert.Contains(t, err.Error(), "user id")
		assert.Contains(t, err.Error(), "total is invalid")
		assert.Contains(t, err.Error(), "created at")
	})

	t.Run("rejects zero-value items", func(t *testing.T) {
		_, err := order.NewOrder("4582", "Asha", "user-17", []order.Item{{}}, decimal.Zero, order.Placed, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder_DeliveredAtInvariant(t *testing.T) {
	base := restoreInStatus(t, order.Preparing).Snapshot()

	t.Run("delivered without timestamp is rejected", func(t *testing.T) {
		s := base
		s.Status = order.Delivered

		_, err := order.RestoreOrder(s)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("timestamp on non-delivered order is rejected", func(t *testing.T) {
		s := base
		s.DeliveredAt = &createdAt

		_, err := order.RestoreOrder(s)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())
	assert.Equal(t, order.ErrOrderIsNotConstructed, (&order.Order{}).Validate())
}

func TestOrder_TransitionTo(t *testing.T) {
	at := createdAt.Add(25 * time.Minute)

	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			t.Run(from.String()+" to "+to.String(), func(t *testing.T) {
				o := restoreInStatus(t, from)

				err := o.TransitionTo(to, at)

				if !from.CanTransitionTo(to) {
					var invalid *order.InvalidTransitionError
					require.ErrorAs(t, err, &invalid)
					require.ErrorIs(t, err, order.ErrInvalidTransition)
					assert.Equal(t, from, invalid.Current)
					assert.Equal(t, to, invalid.Requested)
					assert.Equal(t, from, o.Status(), "status must not change")
					assert.Equal(t, createdAt, o.UpdatedAt())
					return
				}

				require.NoError(t, err)
				assert.Equal(t, to, o.Status())
				assert.Equal(t, at, o.UpdatedAt())
				if to == order.Delivered {
					require.NotNil(t, o.DeliveredAt())
					assert.Equal(t, at, *o.DeliveredAt())
				} else {
					assert.Nil(t, o.DeliveredAt())
				}
			})
		}
	}
}

func TestOrder_TransitionTo_Rejections(t *testing.T) {
	t.Run("message names both statuses", func(t *testing.T) {
		o := restoreInStatus(t, order.Delivered)

		err := o.TransitionTo(order.Cancelled, createdAt)

		assert.EqualError(t, err, "cannot change order 4582 from Delivered to Cancelled")
	})

	t.Run("invalid target status", func(t *testing.T) {
		o := restoreInStatus(t, order.Placed)

		err := o.TransitionTo(order.Unknown, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, errors.Is(err, order.ErrInvalidTransition))
	})

	t.Run("missing timestamp", func(t *testing.T) {
		o := restoreInStatus(t, order.Placed)

		err := o.TransitionTo(order.Pending, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Placed, o.Status())
	})
}

func TestOrder_SnapshotAndVersion(t *testing.T) {
	o := restoreInStatus(t, order.Preparing)

	o.MarkPersisted()
	s := o.Snapshot()

	assert.Equal(t, int64(4), s.Version)
	assert.Equal(t, "Asha Gurung", s.Customer)
	assert.Len(t, s.Items, 2)
	assert.True(t, decimal.RequireFromString("24.5").Equal(s.Total))

	s.Items[0] = order.Item{}
	assert.Equal(t, "Chicken Momo", o.Items()[0].Name(), "snapshot must not alias order state")

	restored, err := order.RestoreOrder(s)
	require.Error(t, err, "zero-value item in snapshot must be rejected")
	assert.Nil(t, restored)
}
