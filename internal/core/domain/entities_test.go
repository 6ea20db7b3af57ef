package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonationTransitions(t *testing.T) {
	assert.True(t, DonationPending.CanTransition(DonationAssigned))
	assert.True(t, DonationPending.CanTransition(DonationRejected))
	assert.True(t, DonationPending.CanTransition(DonationCancelled))

	// Dealer can send an assignment back to the pool
	assert.True(t, DonationAssigned.CanTransition(DonationPending))
	assert.True(t, DonationAssigned.CanTransition(DonationPickedUp))

	assert.True(t, DonationPickedUp.CanTransition(DonationDonated))
	assert.True(t, DonationDonated.CanTransition(DonationProcessed))
	assert.True(t, DonationProcessed.CanTransition(DonationRecycled))

	// No skipping ahead
	assert.False(t, DonationPending.CanTransition(DonationPickedUp))
	assert.False(t, DonationAssigned.CanTransition(DonationDonated))

	// No cancelling once the scrap is in hand
	assert.False(t, DonationPickedUp.CanTransition(DonationCancelled))

	// Terminal states have no edges out
	assert.False(t, DonationRejected.CanTransition(DonationPending))
	assert.False(t, DonationCancelled.CanTransition(DonationPending))
	assert.False(t, DonationRecycled.CanTransition(DonationPending))
}

func TestGaudaanTransitions(t *testing.T) {
	assert.True(t, GaudaanUnassigned.CanTransition(GaudaanAssigned))
	assert.True(t, GaudaanAssigned.CanTransition(GaudaanPickedUp))
	assert.True(t, GaudaanAssigned.CanTransition(GaudaanUnassigned))
	assert.True(t, GaudaanPickedUp.CanTransition(GaudaanShelter))
	assert.True(t, GaudaanShelter.CanTransition(GaudaanDropped))

	assert.False(t, GaudaanUnassigned.CanTransition(GaudaanPickedUp))
	assert.False(t, GaudaanPickedUp.CanTransition(GaudaanRejected))
	assert.False(t, GaudaanDropped.CanTransition(GaudaanShelter))
}

func TestTaskTransitions(t *testing.T) {
	assert.True(t, TaskPending.CanTransition(TaskActive))
	assert.True(t, TaskActive.CanTransition(TaskCompleted))
	assert.True(t, TaskActive.CanTransition(TaskCancelled))

	assert.False(t, TaskPending.CanTransition(TaskCompleted))
	assert.False(t, TaskCompleted.CanTransition(TaskActive))
	assert.False(t, TaskCancelled.CanTransition(TaskPending))
}

func TestRouteForRole(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", RouteForRole(RoleAdmin))
	assert.Equal(t, "/dealer/dashboard", RouteForRole(RoleDealer))
	assert.Equal(t, "/volunteer/dashboard", RouteForRole(RoleVolunteer))
	assert.Equal(t, "/dashboard", RouteForRole(RoleUser))

	// Unknown roles land on the user dashboard
	assert.Equal(t, "/dashboard", RouteForRole(Role("GUEST")))
}
