package geocode

import (
	"context"
	"errors"
	"testing"

	"groceryDeliveryManagement/internal/geo"
)

type stubClient struct {
	reverse    string
	reverseErr error
	place      string
	placeErr   error
}

func (s stubClient) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	return s.reverse, s.reverseErr
}

func (s stubClient) PlaceDetails(ctx context.Context, placeID string) (string, error) {
	return s.place, s.placeErr
}

func TestResolve_ExplicitAddressWins(t *testing.T) {
	got := Resolve(context.Background(), stubClient{place: "ignored"}, Source{
		Address: "  12 Market St  ",
		PlaceID: "p1",
		Point:   &geo.Point{Lat: 1, Lng: 2},
	})
	if got.Address != "12 Market St" {
		t.Fatalf("explicit address must win, got %q", got.Address)
	}
	if got.Point == nil || got.Point.Lat != 1 {
		t.Fatalf("point must be carried through, got %+v", got.Point)
	}
}

func TestResolve_PlaceDetailsBeforeReverseGeocode(t *testing.T) {
	got := Resolve(context.Background(), stubClient{place: "Market Plaza", reverse: "reverse addr"}, Source{
		PlaceID: "p1",
		Point:   &geo.Point{Lat: 1, Lng: 2},
	})
	if got.Address != "Market Plaza" {
		t.Fatalf("place details should resolve first, got %q", got.Address)
	}
}

func TestResolve_PlaceFailureFallsThroughToReverse(t *testing.T) {
	got := Resolve(context.Background(), stubClient{placeErr: errors.New("quota"), reverse: "12 Side Rd"}, Source{
		PlaceID: "p1",
		Point:   &geo.Point{Lat: 1, Lng: 2},
	})
	if got.Address != "12 Side Rd" {
		t.Fatalf("reverse geocode fallback expected, got %q", got.Address)
	}
}

func TestResolve_DisabledUsesCoordinateString(t *testing.T) {
	got := Resolve(context.Background(), Disabled{}, Source{
		PlaceID: "p1",
		Point:   &geo.Point{Lat: 12.97160, Lng: 77.59460},
	})
	if got.Address != "12.97160, 77.59460" {
		t.Fatalf("coordinate fallback expected, got %q", got.Address)
	}
}

func TestResolve_TotalAbsenceYieldsEmptyAddress(t *testing.T) {
	got := Resolve(context.Background(), Disabled{}, Source{})
	if got.Address != "" || got.Point != nil {
		t.Fatalf("total absence must yield empty result, got %+v", got)
	}
}

func TestResolve_NilClientSkipsGeocoding(t *testing.T) {
	got := Resolve(context.Background(), nil, Source{Point: &geo.Point{Lat: 1.5, Lng: 2.5}})
	if got.Address != "1.50000, 2.50000" {
		t.Fatalf("nil client must use the coordinate fallback, got %q", got.Address)
	}
}
