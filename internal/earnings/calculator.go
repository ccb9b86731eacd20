package earnings

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"groceryDeliveryManagement/models"
	"groceryDeliveryManagement/repository"
)

// SellerEarning is one seller's share of an order.
type SellerEarning struct {
	SellerID   int64   `json:"seller_id"`
	ItemTotal  float64 `json:"item_total"`
	Commission float64 `json:"commission"`
	NetEarning float64 `json:"net_earning"`
}

// AgentEarning is the assigned agent's share of the delivery charge.
type AgentEarning struct {
	DeliveryCharge float64 `json:"delivery_charge"`
	NetEarning     float64 `json:"net_earning"`
}

// Breakdown is the full earnings picture for one order. Agent is nil (and
// omitted from JSON) when no agent is assigned.
type Breakdown struct {
	Sellers []SellerEarning `json:"earnings_sellers"`
	Agent   *AgentEarning   `json:"earnings_agent,omitempty"`
}

// LogSource is the narrow read interface over persisted earning records.
type LogSource interface {
	FindByOrder(ctx context.Context, orderID int64) ([]models.EarningLog, error)
}

// Calculator computes per-seller and per-agent earnings for an order,
// preferring persisted earning records when they exist.
type Calculator struct {
	Logs LogSource
	Log  *zap.Logger
}

// Compute returns the earnings breakdown for the order. If the earning-log
// query succeeds and returns records, those authoritative figures are
// returned verbatim; a failing query degrades silently to computation.
func (c *Calculator) Compute(ctx context.Context, order *models.Order, totals []repository.SellerTotal, settings ResolvedSettings) Breakdown {
	if c.Logs != nil {
		logs, err := c.Logs.FindByOrder(ctx, order.ID)
		if err != nil {
			if c.Log != nil {
				c.Log.Warn("earning log read failed, recomputing", zap.Int64("order_id", order.ID), zap.Error(err))
			}
		} else if len(logs) > 0 {
			return fromLogs(logs)
		}
	}

	var out Breakdown
	rate := settings.PlatformCommissionRate
	for _, t := range totals {
		out.Sellers = append(out.Sellers, SellerEarning{
			SellerID:   t.SellerID,
			ItemTotal:  round2(t.ItemTotal),
			Commission: round2(t.ItemTotal * rate),
			NetEarning: round2(t.ItemTotal * (1 - rate)),
		})
	}

	if order.DeliveryAgentID != nil {
		out.Agent = c.agentEarning(order, totals, settings)
	}
	return out
}

// agentEarning applies the admin override first, then the standard
// share-of-delivery-charge formula.
func (c *Calculator) agentEarning(order *models.Order, totals []repository.SellerTotal, settings ResolvedSettings) *AgentEarning {
	charge := EffectiveDeliveryCharge(order, subtotal(order, totals), settings)

	if order.AdminPaysAgent && order.AdminAgentPayment > 0 {
		return &AgentEarning{DeliveryCharge: charge, NetEarning: round2(order.AdminAgentPayment)}
	}
	if charge <= 0 {
		return &AgentEarning{DeliveryCharge: 0, NetEarning: 0}
	}
	return &AgentEarning{
		DeliveryCharge: charge,
		NetEarning:     round2(charge * settings.DeliveryAgentShareRate),
	}
}

// EffectiveDeliveryCharge is the delivery fee used as the agent earning
// basis: the stored charge when present and positive; otherwise the category
// rate when the order total is at or below the minimum-total threshold, and
// zero above it. When settings were unreadable the charge is zero outright,
// never a category default.
func EffectiveDeliveryCharge(order *models.Order, orderTotal float64, settings ResolvedSettings) float64 {
	if order.DeliveryCharge != nil && *order.DeliveryCharge > 0 {
		return round2(*order.DeliveryCharge)
	}
	if !settings.Readable {
		return 0
	}
	threshold := settings.MinTotalForDeliveryCharge
	if threshold > 0 && orderTotal > threshold {
		return 0 // waived above threshold
	}
	if order.Category == models.CategoryFood {
		return round2(settings.DeliveryChargeFood)
	}
	return round2(settings.DeliveryChargeGrocery)
}

func subtotal(order *models.Order, totals []repository.SellerTotal) float64 {
	if len(totals) > 0 {
		var sum float64
		for _, t := range totals {
			sum += t.ItemTotal
		}
		return sum
	}
	return order.Subtotal()
}

func fromLogs(logs []models.EarningLog) Breakdown {
	var out Breakdown
	for _, l := range logs {
		switch l.Role {
		case models.EarningRoleSeller:
			var sellerID int64
			if l.SellerID != nil {
				sellerID = *l.SellerID
			}
			out.Sellers = append(out.Sellers, SellerEarning{
				SellerID:   sellerID,
				ItemTotal:  l.ItemTotal,
				Commission: l.PlatformCommission,
				NetEarning: l.NetEarning,
			})
		case models.EarningRoleDelivery:
			out.Agent = &AgentEarning{DeliveryCharge: l.DeliveryCharge, NetEarning: l.NetEarning}
		}
	}
	return out
}

// round2 rounds to 2 decimal places, half up, applied once at final results.
func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
