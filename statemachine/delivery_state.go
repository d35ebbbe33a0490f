package statemachine

import (
	"errors"

	"foodiego-api/models"
)

// trackingOrder fixes the strictly-forward progression of the delivery
// sub-state. Jumps are rejected; each step must be the immediate successor.
var trackingOrder = []models.TrackingStatus{
	models.TrackingPending,
	models.TrackingAssigned,
	models.TrackingPickedUp,
	models.TrackingOnTheWay,
	models.TrackingArrived,
	models.TrackingDelivered,
}

var trackingRank = func() map[models.TrackingStatus]int {
	m := make(map[models.TrackingStatus]int, len(trackingOrder))
	for i, s := range trackingOrder {
		m[s] = i
	}
	return m
}()

// NextTracking returns the successor of a tracking status, or "" if terminal.
func NextTracking(from models.TrackingStatus) models.TrackingStatus {
	rank, ok := trackingRank[from]
	if !ok || rank+1 >= len(trackingOrder) {
		return ""
	}
	return trackingOrder[rank+1]
}

// CanAdvanceTracking validates a single forward step of the delivery
// progression. pending→assigned happens via assignment, every later step is
// driver-driven.
func CanAdvanceTracking(from, to models.TrackingStatus) error {
	fromRank, okFrom := trackingRank[from]
	toRank, okTo := trackingRank[to]
	if !okFrom || !okTo {
		return errors.New("unknown tracking status")
	}
	if toRank != fromRank+1 {
		return errors.New(
			"invalid tracking transition: " + string(from) + " -> " + string(to) +
				", expected next step " + string(NextTracking(from)),
		)
	}
	return nil
}

// ActiveTracking reports whether a delivery is currently in flight. The
// customer-facing location endpoint only exposes coordinates in this window.
func ActiveTracking(s models.TrackingStatus) bool {
	switch s {
	case models.TrackingAssigned, models.TrackingPickedUp, models.TrackingOnTheWay, models.TrackingArrived:
		return true
	}
	return false
}
