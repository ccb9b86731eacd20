package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"groceryDeliveryManagement/models"
)

// OrderRepository is the core repository for Order entities.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, client_id, status, category, payment_method, payment_amount, payment_status, placement_date,
delivery_status, delivery_agent_id, delivery_charge, pickup_address, pickup_lat, pickup_lng,
delivery_address, delivery_lat, delivery_lng, admin_pays_agent, admin_agent_payment, agent_path`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	var o models.Order
	var status, deliveryStatus, paymentStatus, category string
	var agentID sql.NullInt64
	var charge, pickupLat, pickupLng, deliveryLat, deliveryLng sql.NullFloat64
	var pickupAddr, deliveryAddr, agentPath sql.NullString
	err := row.Scan(&o.ID, &o.ClientID, &status, &category, &o.PaymentMethod, &o.PaymentAmount, &paymentStatus, &o.PlacementAt,
		&deliveryStatus, &agentID, &charge, &pickupAddr, &pickupLat, &pickupLng,
		&deliveryAddr, &deliveryLat, &deliveryLng, &o.AdminPaysAgent, &o.AdminAgentPayment, &agentPath)
	if err != nil {
		return nil, err
	}
	o.Status = models.OrderStatus(status)
	o.Category = models.ProductCategory(category)
	o.PaymentStatus = models.PaymentStatus(paymentStatus)
	o.DeliveryStatus = models.DeliveryStatus(deliveryStatus)
	if agentID.Valid {
		v := agentID.Int64
		o.DeliveryAgentID = &v
	}
	if charge.Valid {
		v := charge.Float64
		o.DeliveryCharge = &v
	}
	for _, pair := range []struct {
		src sql.NullFloat64
		dst **float64
	}{
		{pickupLat, &o.PickupLat}, {pickupLng, &o.PickupLng},
		{deliveryLat, &o.DeliveryLat}, {deliveryLng, &o.DeliveryLng},
	} {
		if pair.src.Valid {
			v := pair.src.Float64
			*pair.dst = &v
		}
	}
	o.PickupAddress = pickupAddr.String
	o.DeliveryAddress = deliveryAddr.String
	o.AgentPath = agentPath.String
	return &o, nil
}

// Create inserts a new order together with its line items.
// Status defaults to 'pending' if empty.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	if o == nil {
		return nil, errors.New("order is nil")
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	if o.DeliveryStatus == "" {
		o.DeliveryStatus = models.DeliveryStatusPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = models.PaymentStatusPending
	}
	if o.Category == "" {
		o.Category = models.CategoryGrocery
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO orders (client_id, status, category, payment_method, payment_amount, payment_status,
delivery_status, delivery_charge, pickup_address, pickup_lat, pickup_lng, delivery_address, delivery_lat, delivery_lng,
admin_pays_agent, admin_agent_payment) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ClientID, string(o.Status), string(o.Category), o.PaymentMethod, o.PaymentAmount, string(o.PaymentStatus),
		string(o.DeliveryStatus), o.DeliveryCharge, nullableStr(o.PickupAddress), o.PickupLat, o.PickupLng,
		nullableStr(o.DeliveryAddress), o.DeliveryLat, o.DeliveryLng, o.AdminPaysAgent, o.AdminAgentPayment)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = id
		ires, err := tx.ExecContext(ctx, `INSERT INTO order_items (order_id, product_id, qty, unit_price) VALUES (?,?,?,?)`,
			id, it.ProductID, it.Qty, it.UnitPrice)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		it.ID, _ = ires.LastInsertId()
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	o2, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o2 == nil {
		return nil, fmt.Errorf("created order not found: id=%d", id)
	}
	return o2, nil
}

// GetByID fetches an order and its line items.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, order_id, product_id, qty, unit_price FROM order_items WHERE order_id = ? ORDER BY id ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Qty, &it.UnitPrice); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

// UpdateStatus updates the order-level status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, string(status), id)
	return err
}

// UpdateDeliveryStatus updates the delivery leg's status.
func (r *OrderRepository) UpdateDeliveryStatus(ctx context.Context, id int64, status models.DeliveryStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET delivery_status = ? WHERE id = ?`, string(status), id)
	return err
}

// UpdatePaymentStatus updates the payment state (COD flips to paid on delivery).
func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET payment_status = ? WHERE id = ?`, string(status), id)
	return err
}

// AssignAgent sets the delivery agent, moves the delivery leg to 'assigned'
// and appends the agent to the order's assignment history.
func (r *OrderRepository) AssignAgent(ctx context.Context, orderID, agentID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	agentIDStr := fmt.Sprintf("%d", agentID)
	_, err := r.db.ExecContext(ctx, `
UPDATE orders SET
  delivery_agent_id = ?,
  delivery_status = ?,
  agent_path = CASE
    WHEN agent_path IS NULL OR agent_path = '' THEN ?
    ELSE agent_path || ',' || ?
  END
WHERE id = ?`, agentID, string(models.DeliveryStatusAssigned), agentIDStr, agentIDStr, orderID)
	return err
}

// CancelDelivery records a cancellation on the delivery leg with its reason
// and origin, and cancels the payment.
func (r *OrderRepository) CancelDelivery(ctx context.Context, id int64, reason, by string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `
UPDATE orders SET
  delivery_status = ?,
  payment_status = ?,
  cancellation_reason = ?,
  cancelled_by = ?,
  cancelled_at = CURRENT_TIMESTAMP
WHERE id = ?`, string(models.DeliveryStatusCancelled), string(models.PaymentStatusCanceled), reason, by, id)
	return err
}

// SellerTotal is an aggregate of one seller's line items within an order.
type SellerTotal struct {
	SellerID  int64
	ItemTotal float64
}

// SellerTotals groups the order's line items by the owning seller and sums
// unit_price * qty per seller. Ordered by seller id asc for determinism.
func (r *OrderRepository) SellerTotals(ctx context.Context, orderID int64) ([]SellerTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `
SELECT p.seller_id, SUM(oi.unit_price * oi.qty)
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = ?
GROUP BY p.seller_id
ORDER BY p.seller_id ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SellerTotal
	for rows.Next() {
		var t SellerTotal
		if err := rows.Scan(&t.SellerID, &t.ItemTotal); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func nullableStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
