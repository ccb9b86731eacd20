package models

// PlatformSettings is the singleton configuration row (id = 1).
// Consumers never read it ad hoc: the earnings package resolves it once per
// operation into a value object with documented defaults.
type PlatformSettings struct {
	PlatformCommissionRate    float64 `db:"platform_commission_rate" json:"platform_commission_rate"`
	DeliveryAgentShareRate    float64 `db:"delivery_agent_share_rate" json:"delivery_agent_share_rate"`
	DeliveryChargeGrocery     float64 `db:"delivery_charge_grocery" json:"delivery_charge_grocery"`
	DeliveryChargeFood        float64 `db:"delivery_charge_food" json:"delivery_charge_food"`
	MinTotalForDeliveryCharge float64 `db:"min_total_for_delivery_charge" json:"min_total_for_delivery_charge"`
	FreeDeliveryThreshold     float64 `db:"free_delivery_threshold" json:"free_delivery_threshold"`
}
