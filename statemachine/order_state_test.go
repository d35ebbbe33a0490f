package statemachine

import (
	"testing"

	"foodiego-api/models"

	"github.com/stretchr/testify/require"
)

func TestHotelForwardPath(t *testing.T) {
	path := []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusOutForDelivery,
	}
	for i := 0; i < len(path)-1; i++ {
		require.NoError(t, CanTransition(path[i], path[i+1], "hotel"),
			"%s -> %s should be a valid hotel move", path[i], path[i+1])
	}
}

func TestDriverCompletesDelivery(t *testing.T) {
	require.NoError(t, CanTransition(models.StatusOutForDelivery, models.StatusDelivered, "driver"))
	require.NoError(t, CanTransition(models.StatusReady, models.StatusDelivered, "driver"))

	// Only the driver settles an order
	require.Error(t, CanTransition(models.StatusOutForDelivery, models.StatusDelivered, "hotel"))
	require.Error(t, CanTransition(models.StatusOutForDelivery, models.StatusDelivered, "customer"))
}

func TestCancellationWindow(t *testing.T) {
	require.NoError(t, CanTransition(models.StatusPending, models.StatusCancelled, "customer"))
	require.NoError(t, CanTransition(models.StatusConfirmed, models.StatusCancelled, "customer"))
	require.NoError(t, CanTransition(models.StatusPending, models.StatusCancelled, "hotel"))

	// Once cooking has started the order cannot be cancelled
	require.Error(t, CanTransition(models.StatusPreparing, models.StatusCancelled, "customer"))
	require.Error(t, CanTransition(models.StatusReady, models.StatusCancelled, "customer"))
	require.Error(t, CanTransition(models.StatusOutForDelivery, models.StatusCancelled, "customer"))
}

func TestNoSkippingStates(t *testing.T) {
	require.Error(t, CanTransition(models.StatusPending, models.StatusPreparing, "hotel"))
	require.Error(t, CanTransition(models.StatusPending, models.StatusDelivered, "driver"))
	require.Error(t, CanTransition(models.StatusConfirmed, models.StatusReady, "hotel"))
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	require.Empty(t, ValidTransitionsFrom(models.StatusDelivered))
	require.Empty(t, ValidTransitionsFrom(models.StatusCancelled))

	require.Error(t, CanTransition(models.StatusDelivered, models.StatusPending, "hotel"))
	require.Error(t, CanTransition(models.StatusCancelled, models.StatusConfirmed, "hotel"))
}

func TestAssignmentDispatchesEarly(t *testing.T) {
	// Pushing a driver onto any pre-dispatch order dispatches it
	require.NoError(t, CanTransition(models.StatusPending, models.StatusOutForDelivery, "hotel"))
	require.NoError(t, CanTransition(models.StatusConfirmed, models.StatusOutForDelivery, "hotel"))
	require.NoError(t, CanTransition(models.StatusPreparing, models.StatusOutForDelivery, "hotel"))
	// but only the hotel can do it
	require.Error(t, CanTransition(models.StatusPending, models.StatusOutForDelivery, "driver"))
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusConfirmed)
	require.ElementsMatch(t, []models.OrderStatus{
		models.StatusPreparing, models.StatusOutForDelivery, models.StatusCancelled,
	}, nexts)
}
