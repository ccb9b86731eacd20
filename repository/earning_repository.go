package repository

import (
	"context"
	"database/sql"
	"time"

	"groceryDeliveryManagement/models"
)

type EarningRepository struct {
	db *sql.DB
}

func NewEarningRepository(db *sql.DB) *EarningRepository {
	return &EarningRepository{db: db}
}

// FindByOrder returns all earning records for an order, sellers first,
// ordered deterministically.
func (r *EarningRepository) FindByOrder(ctx context.Context, orderID int64) ([]models.EarningLog, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `
SELECT id, role, order_id, seller_id, agent_id, item_total, platform_commission, delivery_charge, net_earning, created_at
FROM earning_logs
WHERE order_id = ?
ORDER BY role DESC, seller_id ASC, id ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.EarningLog
	for rows.Next() {
		var e models.EarningLog
		var role string
		var sellerID, agentID sql.NullInt64
		if err := rows.Scan(&e.ID, &role, &e.OrderID, &sellerID, &agentID, &e.ItemTotal, &e.PlatformCommission, &e.DeliveryCharge, &e.NetEarning, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Role = models.EarningRole(role)
		if sellerID.Valid {
			v := sellerID.Int64
			e.SellerID = &v
		}
		if agentID.Valid {
			v := agentID.Int64
			e.AgentID = &v
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpsertSeller records (or refreshes) a seller earning for an order.
func (r *EarningRepository) UpsertSeller(ctx context.Context, orderID, sellerID int64, itemTotal, commission, net float64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO earning_logs (role, order_id, seller_id, item_total, platform_commission, net_earning)
VALUES (?,?,?,?,?,?)
ON CONFLICT(order_id, seller_id) WHERE role = 'seller' DO UPDATE SET
  item_total = excluded.item_total,
  platform_commission = excluded.platform_commission,
  net_earning = excluded.net_earning`,
		string(models.EarningRoleSeller), orderID, sellerID, itemTotal, commission, net)
	return err
}

// UpsertAgent records (or refreshes) a delivery-agent earning for an order.
func (r *EarningRepository) UpsertAgent(ctx context.Context, orderID, agentID int64, deliveryCharge, net float64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO earning_logs (role, order_id, agent_id, delivery_charge, net_earning)
VALUES (?,?,?,?,?)
ON CONFLICT(order_id, agent_id) WHERE role = 'delivery' DO UPDATE SET
  delivery_charge = excluded.delivery_charge,
  net_earning = excluded.net_earning`,
		string(models.EarningRoleDelivery), orderID, agentID, deliveryCharge, net)
	return err
}
