package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfirmedOrder(t *testing.T, tenantID kernel.UUID, qty int) *order.Order {
	t.Helper()
	li, err := order.NewLineItem(kernel.NewUUID(), qty)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), tenantID, []order.LineItem{li})
	require.NoError(t, err)
	return o
}

func TestSessionPlanner_Plan(t *testing.T) {
	planner := services.NewSessionPlanner()
	tenantID := kernel.NewUUID()

	t.Run("opens session over confirmed orders and starts preparation", func(t *testing.T) {
		orderA := newConfirmedOrder(t, tenantID, 2)
		orderB := newConfirmedOrder(t, tenantID, 3)

		s, members, err := planner.Plan(kernel.NewUUID(), tenantID, []*order.Order{orderA, orderB})

		require.NoError(t, err)
		assert.Equal(t, session.Picking, s.Status())
		require.Len(t, members, 2)
		assert.Equal(t, order.InPreparation, orderA.Status())
		assert.Equal(t, order.InPreparation, orderB.Status())
		assert.True(t, s.HasOrder(orderA.ID()))
		assert.True(t, s.HasOrder(orderB.ID()))
	})

	t.Run("skips ineligible candidates", func(t *testing.T) {
		eligible := newConfirmedOrder(t, tenantID, 1)
		cancelled := newConfirmedOrder(t, tenantID, 1)
		require.NoError(t, cancelled.Cancel())
		foreign := newConfirmedOrder(t, kernel.NewUUID(), 1)

		s, members, err := planner.Plan(kernel.NewUUID(), tenantID,
			[]*order.Order{cancelled, eligible, foreign})

		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.True(t, members[0].ID().IsEqual(eligible.ID()))
		assert.False(t, s.HasOrder(cancelled.ID()))
		assert.False(t, s.HasOrder(foreign.ID()))
		assert.Equal(t, order.Cancelled, cancelled.Status())
		assert.Equal(t, order.Confirmed, foreign.Status())
	})

	t.Run("fails when nothing is eligible", func(t *testing.T) {
		cancelled := newConfirmedOrder(t, tenantID, 1)
		require.NoError(t, cancelled.Cancel())

		s, members, err := planner.Plan(kernel.NewUUID(), tenantID, []*order.Order{cancelled})

		require.ErrorIs(t, err, services.ErrNoEligibleOrders)
		assert.Nil(t, s)
		assert.Nil(t, members)
	})

	t.Run("fails on empty candidate set", func(t *testing.T) {
		_, _, err := planner.Plan(kernel.NewUUID(), tenantID, nil)
		require.ErrorIs(t, err, services.ErrNoEligibleOrders)
	})
}
