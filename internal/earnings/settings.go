package earnings

import (
	"context"

	"go.uber.org/zap"

	"groceryDeliveryManagement/models"
)

// Default rates applied when the platform settings cannot be read.
const (
	DefaultCommissionRate = 0.10
	DefaultAgentShareRate = 0.80
)

// SettingsSource is the narrow read interface over the settings singleton.
type SettingsSource interface {
	Get(ctx context.Context) (*models.PlatformSettings, error)
}

// ResolvedSettings is the settings-or-defaults value object fetched once per
// operation. Readable records whether the store produced a row: commission
// and share rates fall back to non-zero defaults, but monetary charge fields
// degrade to zero. A charge the customer was never shown must not be
// invented.
type ResolvedSettings struct {
	models.PlatformSettings
	Readable bool
}

// ResolveSettings fetches the platform settings, degrading to defaults on
// error or absence. Failures are logged, never returned.
func ResolveSettings(ctx context.Context, src SettingsSource, log *zap.Logger) ResolvedSettings {
	fallback := ResolvedSettings{
		PlatformSettings: models.PlatformSettings{
			PlatformCommissionRate: DefaultCommissionRate,
			DeliveryAgentShareRate: DefaultAgentShareRate,
		},
	}
	if src == nil {
		return fallback
	}
	s, err := src.Get(ctx)
	if err != nil {
		if log != nil {
			log.Warn("platform settings read failed, using defaults", zap.Error(err))
		}
		return fallback
	}
	if s == nil {
		return fallback
	}
	out := ResolvedSettings{PlatformSettings: *s, Readable: true}
	if out.PlatformCommissionRate <= 0 {
		out.PlatformCommissionRate = DefaultCommissionRate
	}
	if out.DeliveryAgentShareRate <= 0 {
		out.DeliveryAgentShareRate = DefaultAgentShareRate
	}
	return out
}
