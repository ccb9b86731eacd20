package models

import "groceryDeliveryManagement/internal/geo"

// MaxConcurrentDeliveries is the hard cap on non-terminal deliveries an
// agent may carry at once.
const MaxConcurrentDeliveries = 3

// DeliveryAgent represents a courier.
// assigned_orders counts non-terminal deliveries currently on the agent;
// it is maintained by conditional updates in the repository, never by
// read-modify-write.
type DeliveryAgent struct {
	ID              int64    `db:"id" json:"id"`
	Name            string   `db:"name" json:"name"`
	Approved        bool     `db:"approved" json:"approved"`
	Active          bool     `db:"active" json:"active"`
	Available       bool     `db:"available" json:"available"`
	Lat             *float64 `db:"lat" json:"lat,omitempty"`
	Lng             *float64 `db:"lng" json:"lng,omitempty"`
	AssignedOrders  int      `db:"assigned_orders" json:"assigned_orders"`
	CompletedOrders int      `db:"completed_orders" json:"completed_orders"`
}

// Location returns the agent's current position, or nil when either
// coordinate is missing.
func (a *DeliveryAgent) Location() *geo.Point {
	return geo.NewPoint(a.Lat, a.Lng)
}

// Eligible reports whether the agent may be offered a new order.
func (a *DeliveryAgent) Eligible() bool {
	return a.Approved && a.Active && a.Available && a.AssignedOrders < MaxConcurrentDeliveries
}
