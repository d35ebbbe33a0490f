package statemachine

import (
	"testing"

	"foodiego-api/models"

	"github.com/stretchr/testify/require"
)

func TestTrackingAdvancesOneStepAtATime(t *testing.T) {
	steps := []models.TrackingStatus{
		models.TrackingPending,
		models.TrackingAssigned,
		models.TrackingPickedUp,
		models.TrackingOnTheWay,
		models.TrackingArrived,
		models.TrackingDelivered,
	}
	for i := 0; i < len(steps)-1; i++ {
		require.NoError(t, CanAdvanceTracking(steps[i], steps[i+1]))
	}
}

func TestTrackingRejectsJumpsAndReversals(t *testing.T) {
	require.Error(t, CanAdvanceTracking(models.TrackingAssigned, models.TrackingOnTheWay))
	require.Error(t, CanAdvanceTracking(models.TrackingPending, models.TrackingDelivered))
	require.Error(t, CanAdvanceTracking(models.TrackingOnTheWay, models.TrackingPickedUp))
	require.Error(t, CanAdvanceTracking(models.TrackingDelivered, models.TrackingDelivered))
	require.Error(t, CanAdvanceTracking("bogus", models.TrackingAssigned))
}

func TestNextTracking(t *testing.T) {
	require.Equal(t, models.TrackingPickedUp, NextTracking(models.TrackingAssigned))
	require.Equal(t, models.TrackingStatus(""), NextTracking(models.TrackingDelivered))
}

func TestActiveTrackingWindow(t *testing.T) {
	require.False(t, ActiveTracking(models.TrackingPending))
	require.True(t, ActiveTracking(models.TrackingAssigned))
	require.True(t, ActiveTracking(models.TrackingPickedUp))
	require.True(t, ActiveTracking(models.TrackingOnTheWay))
	require.True(t, ActiveTracking(models.TrackingArrived))
	require.False(t, ActiveTracking(models.TrackingDelivered))
}
