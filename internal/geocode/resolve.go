package geocode

import (
	"context"
	"fmt"
	"strings"

	"groceryDeliveryManagement/internal/geo"
)

// Source describes one location across its chain of decreasing specificity:
// free-text address, place identifier, raw coordinates. Any subset may be
// present.
type Source struct {
	Address string
	PlaceID string
	Point   *geo.Point
}

// Resolved is the outcome of walking a Source's fallback chain. Address is
// empty only when every stage of the chain was absent or failed.
type Resolved struct {
	Address string
	Point   *geo.Point
}

// Resolve produces a point and a readable address for a location. Stages are
// tried in priority order and every failure falls through to the next; total
// absence yields an empty address, never an error.
func Resolve(ctx context.Context, c Client, src Source) Resolved {
	out := Resolved{Point: src.Point}

	if addr := strings.TrimSpace(src.Address); addr != "" {
		out.Address = addr
		return out
	}
	if c != nil {
		if src.PlaceID != "" {
			if addr, err := c.PlaceDetails(ctx, src.PlaceID); err == nil && strings.TrimSpace(addr) != "" {
				out.Address = strings.TrimSpace(addr)
				return out
			}
		}
		if src.Point != nil {
			if addr, err := c.ReverseGeocode(ctx, src.Point.Lat, src.Point.Lng); err == nil && strings.TrimSpace(addr) != "" {
				out.Address = strings.TrimSpace(addr)
				return out
			}
		}
	}
	if src.Point != nil {
		out.Address = fmt.Sprintf("%.5f, %.5f", src.Point.Lat, src.Point.Lng)
	}
	return out
}
