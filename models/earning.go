package models

// EarningRole distinguishes seller and delivery-agent earning records.
type EarningRole string

const (
	EarningRoleSeller   EarningRole = "seller"
	EarningRoleDelivery EarningRole = "delivery"
)

// EarningLog is the persisted record of a computed earning for an order.
// Records are upserted at delivery completion; once present they are the
// authoritative figures and are returned verbatim instead of recomputed.
type EarningLog struct {
	ID                 int64       `db:"id" json:"id"`
	Role               EarningRole `db:"role" json:"role"`
	OrderID            int64       `db:"order_id" json:"order_id"`
	SellerID           *int64      `db:"seller_id" json:"seller_id,omitempty"`
	AgentID            *int64      `db:"agent_id" json:"agent_id,omitempty"`
	ItemTotal          float64     `db:"item_total" json:"item_total"`
	PlatformCommission float64     `db:"platform_commission" json:"platform_commission"`
	DeliveryCharge     float64     `db:"delivery_charge" json:"delivery_charge"`
	NetEarning         float64     `db:"net_earning" json:"net_earning"`
	CreatedAt          string      `db:"created_at" json:"created_at"`
}
