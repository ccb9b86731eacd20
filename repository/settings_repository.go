package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"groceryDeliveryManagement/models"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the platform settings singleton, or nil when none has been
// written yet. Callers resolve nil and errors to documented defaults.
func (r *SettingsRepository) Get(ctx context.Context) (*models.PlatformSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var s models.PlatformSettings
	err := r.db.QueryRowContext(ctx, `SELECT platform_commission_rate, delivery_agent_share_rate, delivery_charge_grocery,
delivery_charge_food, min_total_for_delivery_charge, free_delivery_threshold FROM platform_settings WHERE id = 1`).
		Scan(&s.PlatformCommissionRate, &s.DeliveryAgentShareRate, &s.DeliveryChargeGrocery,
			&s.DeliveryChargeFood, &s.MinTotalForDeliveryCharge, &s.FreeDeliveryThreshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Upsert writes the settings singleton row.
func (r *SettingsRepository) Upsert(ctx context.Context, s *models.PlatformSettings) error {
	if s == nil {
		return errors.New("settings is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO platform_settings (id, platform_commission_rate, delivery_agent_share_rate, delivery_charge_grocery,
delivery_charge_food, min_total_for_delivery_charge, free_delivery_threshold)
VALUES (1,?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
  platform_commission_rate = excluded.platform_commission_rate,
  delivery_agent_share_rate = excluded.delivery_agent_share_rate,
  delivery_charge_grocery = excluded.delivery_charge_grocery,
  delivery_charge_food = excluded.delivery_charge_food,
  min_total_for_delivery_charge = excluded.min_total_for_delivery_charge,
  free_delivery_threshold = excluded.free_delivery_threshold`,
		s.PlatformCommissionRate, s.DeliveryAgentShareRate, s.DeliveryChargeGrocery,
		s.DeliveryChargeFood, s.MinTotalForDeliveryCharge, s.FreeDeliveryThreshold)
	return err
}
