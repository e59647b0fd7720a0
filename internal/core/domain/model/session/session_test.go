package session_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderWith(t *testing.T, tenantID kernel.UUID, items map[kernel.UUID]int) *order.Order {
	t.Helper()
	lineItems := make([]order.LineItem, 0, len(items))
	for productID, qty := range items {
		li, err := order.NewLineItem(productID, qty)
		require.NoError(t, err)
		lineItems = append(lineItems, li)
	}
	o, err := order.NewOrder(kernel.NewUUID(), tenantID, lineItems)
	require.NoError(t, err)
	return o
}

func TestNewPickingSession(t *testing.T) {
	tenantID := kernel.NewUUID()
	productA := kernel.NewUUID()
	productB := kernel.NewUUID()

	t.Run("aggregates quantity needed across member orders", func(t *testing.T) {
		orderA := newOrderWith(t, tenantID, map[kernel.UUID]int{productA: 2, productB: 1})
		orderB := newOrderWith(t, tenantID, map[kernel.UUID]int{productA: 3})

		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{orderA, orderB})

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, session.Picking, s.Status())
		assert.Len(t, s.OrderIDs(), 2)
		assert.True(t, s.HasOrder(orderA.ID()))
		assert.True(t, s.HasOrder(orderB.ID()))

		rowA := s.PickingRow(productA)
		require.NotNil(t, rowA)
		assert.Equal(t, 5, rowA.QuantityNeeded())
		assert.Equal(t, 0, rowA.QuantityPicked())

		rowB := s.PickingRow(productB)
		require.NotNil(t, rowB)
		assert.Equal(t, 1, rowB.QuantityNeeded())

		assert.Len(t, s.PackingRows(), 3)
		packA := s.PackingRow(orderA.ID(), productA)
		require.NotNil(t, packA)
		assert.Equal(t, 2, packA.QuantityNeeded())
	})

	t.Run("generates human-readable code", func(t *testing.T) {
		o := newOrderWith(t, tenantID, map[kernel.UUID]int{productA: 1})
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{o})

		require.NoError(t, err)
		assert.Regexp(t, `^PICK-[0-9A-F]{8}$`, s.Code())
	})

	t.Run("rejects empty order set", func(t *testing.T) {
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, s)
	})

	t.Run("rejects order from another tenant", func(t *testing.T) {
		o := newOrderWith(t, kernel.NewUUID(), map[kernel.UUID]int{productA: 1})

		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{o})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, s)
	})

	t.Run("rejects ineligible order", func(t *testing.T) {
		o := newOrderWith(t, tenantID, map[kernel.UUID]int{productA: 1})
		require.NoError(t, o.Cancel())

		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{o})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, s)
	})
}

func TestPickingSession_RecordPicked(t *testing.T) {
	tenantID := kernel.NewUUID()
	productA := kernel.NewUUID()

	newSession := func(t *testing.T, needed int) *session.PickingSession {
		t.Helper()
		o := newOrderWith(t, tenantID, map[kernel.UUID]int{productA: needed})
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{o})
		require.NoError(t, err)
		return s
	}

	t.Run("returns new cumulative value", func(t *testing.T) {
		s := newSession(t, 3)

		got, err := s.RecordPicked(productA, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, got)

		got, err = s.RecordPicked(productA, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, got)
	})

	t.Run("fails with AlreadyFullyPicked at the bound", func(t *testing.T) {
		s := newSession(t, 2)
		_, err := s.RecordPicked(productA, 2)
		require.NoError(t, err)

		got, err := s.RecordPicked(productA, 1)
		require.ErrorIs(t, err, errs.ErrAlreadyFullyPicked)
		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Equal(t, 2, got)
		assert.Equal(t, 2, s.PickingRow(productA).QuantityPicked())
	})

	t.Run("rejects delta that would overshoot", func(t *testing.T) {
		s := newSession(t, 3)
		_, err := s.RecordPicked(productA, 2)
		require.NoError(t, err)

		_, err = s.RecordPicked(productA, 2)
		require.ErrorIs(t, err, errs.ErrAlreadyFullyPicked)
		assert.Equal(t, 2, s.PickingRow(productA).QuantityPicked())
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		s := newSession(t, 1)
		_, err := s.RecordPicked(kernel.NewUUID(), 1)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("rejects non-positive delta", func(t *testing.T) {
		s := newSession(t, 1)
		_, err := s.RecordPicked(productA, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects picking while packing", func(t *testing.T) {
		s := newSession(t, 1)
		_, err := s.RecordPicked(productA, 1)
		require.NoError(t, err)
		require.NoError(t, s.FinishPicking(false))

		_, err = s.RecordPicked(productA, 1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPickingSession_FinishPicking(t *testing.T) {
	tenantID := kernel.NewUUID()
	productA := kernel.NewUUID()

	t.Run("fails while pick list unsatisfied", func(t *testing.T) {
		o := newOrderWith(t, tenantID, map[kernel.UUID]int{productA: 3})
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{o})
		require.NoError(t, err)
		_, err = s.RecordPicked(productA, 1)
		require.NoError(t, err)

		err = s.FinishPicking(false)

		require.ErrorIs(t, err, errs.ErrPickingIncomplete)
		var incomplete *errs.PickingIncompleteError
		require.ErrorAs(t, err, &incomplete)
		require.Len(t, incomplete.Shortfalls, 1)
		assert.Equal(t, 2, incomplete.Shortfalls[0].Missing)
		assert.Equal(t, session.Picking, s.Status())
	})

	t.Run("acknowledged shortfall proceeds to packing", func(t *testing.T) {
		o := newOrderWith(t, tenantID, map[kernel.UUID]int{productA: 3})
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{o})
		require.NoError(t, err)
		_, err = s.RecordPicked(productA, 1)
		require.NoError(t, err)

		require.NoError(t, s.FinishPicking(true))
		assert.Equal(t, session.Packing, s.Status())
	})

	t.Run("idempotent second call is a no-op success", func(t *testing.T) {
		o := newOrderWith(t, tenantID, map[kernel.UUID]int{productA: 1})
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{o})
		require.NoError(t, err)
		_, err = s.RecordPicked(productA, 1)
		require.NoError(t, err)

		require.NoError(t, s.FinishPicking(false))
		require.NoError(t, s.FinishPicking(false))
		assert.Equal(t, session.Packing, s.Status())
	})

	t.Run("cannot finish a cancelled session", func(t *testing.T) {
		o := newOrderWith(t, tenantID, map[kernel.UUID]int{productA: 1})
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{o})
		require.NoError(t, err)
		require.NoError(t, s.Cancel())

		require.Error(t, s.FinishPicking(false))
	})
}

func TestPickingSession_PackUnit(t *testing.T) {
	tenantID := kernel.NewUUID()
	productP := kernel.NewUUID()

	// Session with orders A (needs 2 of P) and B (needs 3 of P).
	newPackingSession := func(t *testing.T, picked int) (*session.PickingSession, *order.Order, *order.Order) {
		t.Helper()
		orderA := newOrderWith(t, tenantID, map[kernel.UUID]int{productP: 2})
		orderB := newOrderWith(t, tenantID, map[kernel.UUID]int{productP: 3})
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{orderA, orderB})
		require.NoError(t, err)
		if picked > 0 {
			_, err = s.RecordPicked(productP, picked)
			require.NoError(t, err)
		}
		require.NoError(t, s.FinishPicking(picked < 5))
		return s, orderA, orderB
	}

	t.Run("drains basket into both orders in any interleaving", func(t *testing.T) {
		s, orderA, orderB := newPackingSession(t, 5)

		calls := []kernel.UUID{orderB.ID(), orderA.ID(), orderB.ID(), orderA.ID(), orderB.ID()}
		for _, orderID := range calls {
			_, err := s.PackUnit(orderID, productP)
			require.NoError(t, err)
		}

		assert.True(t, s.IsOrderFullyPacked(orderA.ID()))
		assert.True(t, s.IsOrderFullyPacked(orderB.ID()))
		assert.Equal(t, 0, s.BasketRemaining(productP))
	})

	t.Run("fails with AlreadyFullyPacked at the order bound", func(t *testing.T) {
		s, orderA, _ := newPackingSession(t, 5)
		_, err := s.PackUnit(orderA.ID(), productP)
		require.NoError(t, err)
		_, err = s.PackUnit(orderA.ID(), productP)
		require.NoError(t, err)

		got, err := s.PackUnit(orderA.ID(), productP)
		require.ErrorIs(t, err, errs.ErrAlreadyFullyPacked)
		assert.Equal(t, 2, got)
	})

	t.Run("fails with NoUnitsAvailable when basket exhausted", func(t *testing.T) {
		s, orderA, orderB := newPackingSession(t, 1)
		_, err := s.PackUnit(orderA.ID(), productP)
		require.NoError(t, err)

		_, err = s.PackUnit(orderB.ID(), productP)
		require.ErrorIs(t, err, errs.ErrNoUnitsAvailable)
		assert.Equal(t, 0, s.PackingRow(orderB.ID(), productP).QuantityPacked())
	})

	t.Run("rejects packing while picking", func(t *testing.T) {
		orderA := newOrderWith(t, tenantID, map[kernel.UUID]int{productP: 1})
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{orderA})
		require.NoError(t, err)

		_, err = s.PackUnit(orderA.ID(), productP)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects non-member order", func(t *testing.T) {
		s, _, _ := newPackingSession(t, 5)
		_, err := s.PackUnit(kernel.NewUUID(), productP)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestPickingSession_Complete(t *testing.T) {
	tenantID := kernel.NewUUID()
	productP := kernel.NewUUID()

	t.Run("fails with IncompleteOrders naming the short pairs", func(t *testing.T) {
		orderA := newOrderWith(t, tenantID, map[kernel.UUID]int{productP: 2})
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{orderA})
		require.NoError(t, err)
		_, err = s.RecordPicked(productP, 2)
		require.NoError(t, err)
		require.NoError(t, s.FinishPicking(false))
		_, err = s.PackUnit(orderA.ID(), productP)
		require.NoError(t, err)

		err = s.Complete()

		require.ErrorIs(t, err, errs.ErrIncompleteOrders)
		var incomplete *errs.IncompleteOrdersError
		require.ErrorAs(t, err, &incomplete)
		require.Len(t, incomplete.Shortfalls, 1)
		assert.Equal(t, orderA.ID().String(), incomplete.Shortfalls[0].OrderID)
		assert.Equal(t, 1, incomplete.Shortfalls[0].Missing)
		assert.Equal(t, session.Packing, s.Status())
	})

	t.Run("completes once every order is fully packed", func(t *testing.T) {
		orderA := newOrderWith(t, tenantID, map[kernel.UUID]int{productP: 1})
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{orderA})
		require.NoError(t, err)
		_, err = s.RecordPicked(productP, 1)
		require.NoError(t, err)
		require.NoError(t, s.FinishPicking(false))
		_, err = s.PackUnit(orderA.ID(), productP)
		require.NoError(t, err)

		require.NoError(t, s.Complete())
		assert.Equal(t, session.Completed, s.Status())

		// Idempotent retry.
		require.NoError(t, s.Complete())
	})
}

func TestPickingSession_Cancel(t *testing.T) {
	tenantID := kernel.NewUUID()
	productP := kernel.NewUUID()

	t.Run("cancel while picking", func(t *testing.T) {
		o := newOrderWith(t, tenantID, map[kernel.UUID]int{productP: 1})
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{o})
		require.NoError(t, err)

		require.NoError(t, s.Cancel())
		assert.Equal(t, session.Cancelled, s.Status())
	})

	t.Run("cancel while packing", func(t *testing.T) {
		o := newOrderWith(t, tenantID, map[kernel.UUID]int{productP: 1})
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{o})
		require.NoError(t, err)
		require.NoError(t, s.FinishPicking(true))

		require.NoError(t, s.Cancel())
		assert.Equal(t, session.Cancelled, s.Status())
	})

	t.Run("cannot cancel a completed session", func(t *testing.T) {
		o := newOrderWith(t, tenantID, map[kernel.UUID]int{productP: 1})
		s, err := session.NewPickingSession(kernel.NewUUID(), tenantID, []*order.Order{o})
		require.NoError(t, err)
		_, err = s.RecordPicked(productP, 1)
		require.NoError(t, err)
		require.NoError(t, s.FinishPicking(false))
		_, err = s.PackUnit(o.ID(), productP)
		require.NoError(t, err)
		require.NoError(t, s.Complete())

		require.Error(t, s.Cancel())
	})
}

func TestRestorePickingSession(t *testing.T) {
	tenantID := kernel.NewUUID()
	productP := kernel.NewUUID()
	orderID := kernel.NewUUID()

	pickRow, err := session.RestorePickingProgress(productP, 5, 3)
	require.NoError(t, err)
	packRow, err := session.RestorePackingProgress(orderID, productP, 5, 2)
	require.NoError(t, err)

	t.Run("restores full state", func(t *testing.T) {
		s, restoreErr := session.RestorePickingSession(
			kernel.NewUUID(), tenantID, "PICK-0A1B2C3D", session.Packing,
			[]kernel.UUID{orderID},
			[]*session.PickingProgress{pickRow},
			[]*session.PackingProgress{packRow},
			time.Now().UTC(),
		)

		require.NoError(t, restoreErr)
		assert.Equal(t, session.Packing, s.Status())
		assert.Equal(t, "PICK-0A1B2C3D", s.Code())
		assert.Equal(t, 1, s.BasketRemaining(productP))
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, restoreErr := session.RestorePickingSession(
			kernel.NewUUID(), tenantID, "PICK-0A1B2C3D", session.Unknown,
			[]kernel.UUID{orderID}, nil, nil, time.Now().UTC(),
		)
		require.Error(t, restoreErr)
	})

	t.Run("rejects picked above needed", func(t *testing.T) {
		_, restoreErr := session.RestorePickingProgress(productP, 5, 6)
		require.ErrorIs(t, restoreErr, errs.ErrValueIsOutOfRange)
	})
}
