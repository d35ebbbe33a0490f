package statemachine

import (
	"errors"

	"foodiego-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "hotel", "driver", "customer", "system"
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Hotel drives the forward path
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: "hotel"},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: "hotel"},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: "hotel"},
	{From: models.StatusReady, To: models.StatusOutForDelivery, Actor: "hotel"},
	// Driver assignment forces out_for_delivery from any pre-dispatch state;
	// assigning on a pending order implies confirmation
	{From: models.StatusPending, To: models.StatusOutForDelivery, Actor: "hotel"},
	{From: models.StatusConfirmed, To: models.StatusOutForDelivery, Actor: "hotel"},
	{From: models.StatusPreparing, To: models.StatusOutForDelivery, Actor: "hotel"},
	// Settlement flips the order terminal on the driver's final tracking step
	{From: models.StatusOutForDelivery, To: models.StatusDelivered, Actor: "driver"},
	{From: models.StatusReady, To: models.StatusDelivered, Actor: "driver"},
	// Cancellation only from pending/confirmed
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "hotel"},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: "hotel"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
