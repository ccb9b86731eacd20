package models

import (
	"strconv"
	"strings"

	"groceryDeliveryManagement/internal/geo"
)

// OrderStatus represents the current progress of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// DeliveryStatus represents the progress of the delivery leg of an order.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusAssigned  DeliveryStatus = "assigned"
	DeliveryStatusAccepted  DeliveryStatus = "accepted"
	DeliveryStatusPickedUp  DeliveryStatus = "picked_up"
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusCancelled DeliveryStatus = "cancelled"
)

// PaymentStatus represents the state of the order's payment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusCanceled PaymentStatus = "canceled"
)

// OrderItem is a line item snapshotting the unit price at checkout.
type OrderItem struct {
	ID        int64   `db:"id" json:"id"`
	OrderID   int64   `db:"order_id" json:"order_id"`
	ProductID int64   `db:"product_id" json:"product_id"`
	Qty       int     `db:"qty" json:"qty"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
}

// Order represents a customer purchase, including its delivery sub-record.
// Delivery fields are nullable in DB; use pointers to distinguish null
// from zero.
type Order struct {
	ID            int64           `db:"id" json:"id"`
	ClientID      int64           `db:"client_id" json:"client_id"`
	Status        OrderStatus     `db:"status" json:"status"`
	Category      ProductCategory `db:"category" json:"category"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	PaymentAmount float64         `db:"payment_amount" json:"payment_amount"`
	PaymentStatus PaymentStatus   `db:"payment_status" json:"payment_status"`
	PlacementAt   string          `db:"placement_date" json:"placement_date"`

	DeliveryStatus  DeliveryStatus `db:"delivery_status" json:"delivery_status"`
	DeliveryAgentID *int64         `db:"delivery_agent_id" json:"delivery_agent_id,omitempty"`
	DeliveryCharge  *float64       `db:"delivery_charge" json:"delivery_charge,omitempty"`

	PickupAddress   string   `db:"pickup_address" json:"pickup_address,omitempty"`
	PickupLat       *float64 `db:"pickup_lat" json:"pickup_lat,omitempty"`
	PickupLng       *float64 `db:"pickup_lng" json:"pickup_lng,omitempty"`
	DeliveryAddress string   `db:"delivery_address" json:"delivery_address,omitempty"`
	DeliveryLat     *float64 `db:"delivery_lat" json:"delivery_lat,omitempty"`
	DeliveryLng     *float64 `db:"delivery_lng" json:"delivery_lng,omitempty"`

	// Admin override: when AdminPaysAgent is set with a positive payment,
	// that fixed amount is the agent's earning for this order.
	AdminPaysAgent    bool    `db:"admin_pays_agent" json:"admin_pays_agent"`
	AdminAgentPayment float64 `db:"admin_agent_payment" json:"admin_agent_payment"`

	// AgentPath is a comma-delimited string of agent IDs that have been
	// assigned to this order, in assignment order. Used as reassignment
	// history.
	AgentPath string `db:"agent_path" json:"agent_path,omitempty"`

	Items []OrderItem `db:"-" json:"items,omitempty"`
}

// PickupLocation returns the order's own pickup point, or nil when unknown.
func (o *Order) PickupLocation() *geo.Point {
	return geo.NewPoint(o.PickupLat, o.PickupLng)
}

// DeliveryLocation returns the drop-off point, or nil when unknown.
func (o *Order) DeliveryLocation() *geo.Point {
	return geo.NewPoint(o.DeliveryLat, o.DeliveryLng)
}

// Subtotal sums unit_price * qty over the order's line items.
func (o *Order) Subtotal() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.UnitPrice * float64(it.Qty)
	}
	return total
}

// AgentPathIDs parses AgentPath into agent IDs, skipping malformed entries.
func (o *Order) AgentPathIDs() []int64 {
	if o.AgentPath == "" {
		return nil
	}
	parts := strings.Split(o.AgentPath, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

// TerminalDelivery reports whether the delivery leg can no longer change.
func TerminalDelivery(s DeliveryStatus) bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusCancelled
}
