package service

import "groceryDeliveryManagement/models"

// deliveryTransitions is the forward state machine of the delivery leg.
// Cancellation is reachable only before the agent takes over the order;
// admin-forced reassignment re-enters 'assigned' from any non-terminal state
// and is handled separately in Reassign.
var deliveryTransitions = map[models.DeliveryStatus][]models.DeliveryStatus{
	models.DeliveryStatusPending:   {models.DeliveryStatusAssigned, models.DeliveryStatusCancelled},
	models.DeliveryStatusAssigned:  {models.DeliveryStatusAccepted, models.DeliveryStatusCancelled},
	models.DeliveryStatusAccepted:  {models.DeliveryStatusPickedUp},
	models.DeliveryStatusPickedUp:  {models.DeliveryStatusInTransit},
	models.DeliveryStatusInTransit: {models.DeliveryStatusDelivered},
}

// CanTransition reports whether the delivery leg may move from one status to
// another.
func CanTransition(from, to models.DeliveryStatus) bool {
	for _, next := range deliveryTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// agentAdvances are the transitions a delivery agent may drive directly.
var agentAdvances = map[models.DeliveryStatus]bool{
	models.DeliveryStatusAccepted:  true,
	models.DeliveryStatusPickedUp:  true,
	models.DeliveryStatusInTransit: true,
	models.DeliveryStatusDelivered: true,
}
