package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlowForSelectsVariant(t *testing.T) {
	t.Parallel()

	simple := FlowFor(false)
	custom := FlowFor(true)

	assert.Len(t, simple, 6)
	assert.Len(t, custom, 8)

	for _, status := range simple {
		assert.NotEqual(t, OrderStatusAwaitingCustomization, status)
		assert.NotEqual(t, OrderStatusArtFinalized, status)
	}

	assert.Equal(t, OrderStatusAwaitingCustomization, custom[2])
	assert.Equal(t, OrderStatusArtFinalized, custom[3])
}

func TestStepIndexIsTotal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, StepIndex(SimpleFlow, OrderStatusPending))
	assert.Equal(t, 2, StepIndex(SimpleFlow, OrderStatusProcessing))
	assert.Equal(t, 4, StepIndex(CustomizationFlow, OrderStatusProcessing))

	// Statuses outside the flow fall back to the first step.
	assert.Equal(t, 0, StepIndex(SimpleFlow, OrderStatusAwaitingCustomization))
	assert.Equal(t, 0, StepIndex(SimpleFlow, OrderStatusCancelled))
	assert.Equal(t, 0, StepIndex(SimpleFlow, OrderStatus("bogus")))
}

func TestCanTransitionForwardOnly(t *testing.T) {
	t.Parallel()

	assert.True(t, CanTransition(OrderStatusPending, OrderStatusPaid))
	assert.True(t, CanTransition(OrderStatusPaid, OrderStatusProcessing))
	assert.True(t, CanTransition(OrderStatusPaid, OrderStatusAwaitingCustomization))
	assert.True(t, CanTransition(OrderStatusAwaitingCustomization, OrderStatusArtFinalized))
	assert.True(t, CanTransition(OrderStatusShipped, OrderStatusDelivered))

	assert.False(t, CanTransition(OrderStatusPaid, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusProcessing, OrderStatusPaid))
	assert.False(t, CanTransition(OrderStatusPending, OrderStatusShipped))
	assert.False(t, CanTransition(OrderStatusDelivered, OrderStatusShipped))
}

func TestCanTransitionCancellationAbsorbing(t *testing.T) {
	t.Parallel()

	for _, status := range validOrderStatuses {
		if status.IsTerminal() {
			assert.False(t, CanTransition(status, OrderStatusCancelled), "from %s", status)
			continue
		}
		assert.True(t, CanTransition(status, OrderStatusCancelled), "from %s", status)
	}

	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusDelivered, OrderStatusCancelled))
}

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseOrderStatus("ready_to_ship")
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusReadyToShip, status)

	_, err = ParseOrderStatus("teleported")
	assert.Error(t, err)
}
