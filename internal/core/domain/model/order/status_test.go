package order_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Confirmed,
			order.InPreparation,
			order.ReadyToShip,
			order.Shipped,
			order.Delivered,
			order.Returned,
			order.DeliveryFailed,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject out-of-range status", func(t *testing.T) {
		err := order.Status(99).Validate()
		require.Error(t, err)
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Confirmed", order.Confirmed.String())
	assert.Equal(t, "InPreparation", order.InPreparation.String())
	assert.Equal(t, "ReadyToShip", order.ReadyToShip.String())
	assert.Equal(t, "Shipped", order.Shipped.String())
	assert.Equal(t, "Delivered", order.Delivered.String())
	assert.Equal(t, "Returned", order.Returned.String())
	assert.Equal(t, "DeliveryFailed", order.DeliveryFailed.String())
	assert.Equal(t, "Cancelled", order.Cancelled.String())
	assert.Equal(t, "Unknown", order.Unknown.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatus_Transitions(t *testing.T) {
	type transition struct {
		name string
		run  func(order.Status) (order.Status, error)
	}

	transitions := map[string]transition{
		"StartPreparation":   {"StartPreparation", order.Status.StartPreparation},
		"Release":            {"Release", order.Status.Release},
		"MarkReadyToShip":    {"MarkReadyToShip", order.Status.MarkReadyToShip},
		"Ship":               {"Ship", order.Status.Ship},
		"MarkDelivered":      {"MarkDelivered", order.Status.MarkDelivered},
		"MarkReturned":       {"MarkReturned", order.Status.MarkReturned},
		"MarkDeliveryFailed": {"MarkDeliveryFailed", order.Status.MarkDeliveryFailed},
		"Cancel":             {"Cancel", order.Status.Cancel},
	}

	valid := []struct {
		from       order.Status
		transition string
		to         order.Status
	}{
		{order.Confirmed, "StartPreparation", order.InPreparation},
		{order.InPreparation, "Release", order.Confirmed},
		{order.InPreparation, "MarkReadyToShip", order.ReadyToShip},
		{order.ReadyToShip, "Ship", order.Shipped},
		{order.Shipped, "MarkDelivered", order.Delivered},
		{order.Shipped, "MarkReturned", order.Returned},
		{order.Shipped, "MarkDeliveryFailed", order.DeliveryFailed},
		{order.Confirmed, "Cancel", order.Cancelled},
		{order.InPreparation, "Cancel", order.Cancelled},
		{order.ReadyToShip, "Cancel", order.Cancelled},
	}

	for _, tc := range valid {
		t.Run(fmt.Sprintf("%s via %s", tc.from, tc.transition), func(t *testing.T) {
			got, err := transitions[tc.transition].run(tc.from)
			require.NoError(t, err)
			assert.Equal(t, tc.to, got)
		})
	}

	invalid := []struct {
		from       order.Status
		transition string
	}{
		{order.Confirmed, "MarkReadyToShip"},
		{order.Confirmed, "Ship"},
		{order.ReadyToShip, "StartPreparation"},
		{order.ReadyToShip, "Release"},
		{order.Shipped, "Cancel"},
		{order.Delivered, "Cancel"},
		{order.Returned, "Cancel"},
		{order.DeliveryFailed, "Cancel"},
		{order.Cancelled, "StartPreparation"},
		{order.Cancelled, "Cancel"},
		{order.Unknown, "StartPreparation"},
		{order.Delivered, "Ship"},
	}

	for _, tc := range invalid {
		t.Run(fmt.Sprintf("%s cannot %s", tc.from, tc.transition), func(t *testing.T) {
			_, err := transitions[tc.transition].run(tc.from)
			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}

func TestStatus_StockAffected(t *testing.T) {
	affected := []order.Status{
		order.ReadyToShip, order.Shipped, order.Delivered, order.Returned, order.DeliveryFailed,
	}
	for _, s := range affected {
		assert.True(t, s.StockAffected(), "%s should be stock affected", s)
	}

	unaffected := []order.Status{order.Unknown, order.Confirmed, order.InPreparation, order.Cancelled}
	for _, s := range unaffected {
		assert.False(t, s.StockAffected(), "%s should not be stock affected", s)
	}
}

func TestStatus_IsEligibleForSession(t *testing.T) {
	assert.True(t, order.Confirmed.IsEligibleForSession())
	assert.False(t, order.InPreparation.IsEligibleForSession())
	assert.False(t, order.Cancelled.IsEligibleForSession())
	assert.False(t, order.ReadyToShip.IsEligibleForSession())
}
