package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickupStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to PickupStatus
		want     bool
	}{
		{PickupPending, PickupAssigned, true},
		{PickupPending, PickupCancelled, true},
		{PickupPending, PickupCompleted, false},
		{PickupAssigned, PickupPending, true},
		{PickupAssigned, PickupCompleted, true},
		{PickupAssigned, PickupCancelled, true},
		{PickupCompleted, PickupPending, false},
		{PickupCompleted, PickupCancelled, false},
		{PickupCancelled, PickupAssigned, false},
		{PickupCompleted, PickupCompleted, true},
		{PickupPending, PickupPending, true},
		{PickupPending, PickupStatus("lost"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestComplaintStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, ComplaintPending.CanTransitionTo(ComplaintInProgress))
	assert.True(t, ComplaintPending.CanTransitionTo(ComplaintResolved))
	assert.True(t, ComplaintInProgress.CanTransitionTo(ComplaintClosed))
	assert.True(t, ComplaintResolved.CanTransitionTo(ComplaintClosed))
	assert.True(t, ComplaintClosed.CanTransitionTo(ComplaintClosed))

	assert.False(t, ComplaintResolved.CanTransitionTo(ComplaintPending))
	assert.False(t, ComplaintInProgress.CanTransitionTo(ComplaintPending))
	assert.False(t, ComplaintClosed.CanTransitionTo(ComplaintResolved))
}

func TestLedger_ReversalNegatesCredit(t *testing.T) {
	p := &Pickup{ID: 7, AccountID: 3, PointsEarned: 25, DiscountAdded: 20, CO2Saved: 12.5}

	credit := CreditFor(p)
	rev := ReversalFor(p)

	assert.Equal(t, LedgerCredit, credit.Type)
	assert.Equal(t, LedgerReversal, rev.Type)
	assert.Equal(t, int64(1), credit.Pickups)
	assert.Equal(t, int64(-1), rev.Pickups)
	assert.Equal(t, -credit.Points, rev.Points)
	assert.Equal(t, -credit.Discount, rev.Discount)
	assert.Equal(t, -credit.CO2, rev.CO2)
}

func TestWasteType_IsRecycled(t *testing.T) {
	assert.True(t, WasteRecyclable.IsRecycled())
	assert.True(t, WasteOrganic.IsRecycled())
	assert.True(t, WasteElectronic.IsRecycled())
	assert.False(t, WasteGeneral.IsRecycled())
	assert.False(t, WasteHazardous.IsRecycled())
}
