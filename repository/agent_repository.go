package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"groceryDeliveryManagement/models"
)

type AgentRepository struct {
	db *sql.DB
}

func NewAgentRepository(db *sql.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

const agentColumns = `id, name, approved, active, available, lat, lng, assigned_orders, completed_orders`

func scanAgent(row interface{ Scan(...any) error }) (*models.DeliveryAgent, error) {
	var a models.DeliveryAgent
	var lat, lng sql.NullFloat64
	err := row.Scan(&a.ID, &a.Name, &a.Approved, &a.Active, &a.Available, &lat, &lng, &a.AssignedOrders, &a.CompletedOrders)
	if err != nil {
		return nil, err
	}
	if lat.Valid {
		v := lat.Float64
		a.Lat = &v
	}
	if lng.Valid {
		v := lng.Float64
		a.Lng = &v
	}
	return &a, nil
}

// Create inserts a new delivery agent.
func (r *AgentRepository) Create(ctx context.Context, a *models.DeliveryAgent) (*models.DeliveryAgent, error) {
	if a == nil {
		return nil, errors.New("agent is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO delivery_agents (name, approved, active, available, lat, lng, assigned_orders, completed_orders) VALUES (?,?,?,?,?,?,?,?)`,
		a.Name, a.Approved, a.Active, a.Available, a.Lat, a.Lng, a.AssignedOrders, a.CompletedOrders)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	a.ID = id
	return a, nil
}

func (r *AgentRepository) GetByID(ctx context.Context, id int64) (*models.DeliveryAgent, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	a, err := scanAgent(r.db.QueryRowContext(ctx, `SELECT `+agentColumns+` FROM delivery_agents WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// ListAvailable returns agents that are approved, active and available,
// ordered by id asc so callers get deterministic tie-breaking. Capacity is
// not filtered here; the selector treats the cap as a strict elimination.
func (r *AgentRepository) ListAvailable(ctx context.Context) ([]models.DeliveryAgent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+agentColumns+` FROM delivery_agents WHERE approved = 1 AND active = 1 AND available = 1 ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.DeliveryAgent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// AcquireSlot atomically claims a delivery slot on the agent. The increment
// is guarded by the capacity cap in the WHERE clause, so concurrent
// acceptances can never push an agent past the cap. Returns false when the
// agent was already at capacity (or missing).
func (r *AgentRepository) AcquireSlot(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE delivery_agents SET assigned_orders = assigned_orders + 1 WHERE id = ? AND assigned_orders < ?`,
		id, models.MaxConcurrentDeliveries)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReleaseSlot frees one delivery slot, flooring the count at zero.
func (r *AgentRepository) ReleaseSlot(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE delivery_agents SET assigned_orders = MAX(assigned_orders - 1, 0) WHERE id = ?`, id)
	return err
}

// CompleteDelivery frees a slot and increments the completed counter in one
// statement, mirroring the terminal transition of a delivery.
func (r *AgentRepository) CompleteDelivery(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE delivery_agents SET assigned_orders = MAX(assigned_orders - 1, 0), completed_orders = completed_orders + 1 WHERE id = ?`, id)
	return err
}

func (r *AgentRepository) UpdateAvailability(ctx context.Context, id int64, available bool) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE delivery_agents SET available = ? WHERE id = ?`, available, id)
	return err
}

func (r *AgentRepository) UpdateLocation(ctx context.Context, id int64, lat, lng float64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE delivery_agents SET lat = ?, lng = ? WHERE id = ?`, lat, lng, id)
	return err
}
