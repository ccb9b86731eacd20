package geocode

import (
	"context"
	"errors"
)

// Client is the geocoding collaborator. Implementations live outside this
// core; both calls are fallible and bounded, and every caller falls through
// to the next resolution stage on error.
type Client interface {
	// ReverseGeocode resolves coordinates to a human-readable address.
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
	// PlaceDetails resolves a place identifier to a formatted address.
	PlaceDetails(ctx context.Context, placeID string) (string, error)
}

// ErrDisabled is returned by Disabled for every call.
var ErrDisabled = errors.New("geocoding disabled")

// Disabled is the no-op client used when the geocoding feature flag is off.
// Callers then fall through to the coordinate-string address fallback.
type Disabled struct{}

func (Disabled) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	return "", ErrDisabled
}

func (Disabled) PlaceDetails(ctx context.Context, placeID string) (string, error) {
	return "", ErrDisabled
}
