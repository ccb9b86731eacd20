package models

import "groceryDeliveryManagement/internal/geo"

// Seller represents a merchant. Location, place id and address are all
// optional; pickup resolution walks them in order of specificity.
type Seller struct {
	ID           int64    `db:"id" json:"id"`
	BusinessName string   `db:"business_name" json:"business_name"`
	Approved     bool     `db:"approved" json:"approved"`
	Lat          *float64 `db:"lat" json:"lat,omitempty"`
	Lng          *float64 `db:"lng" json:"lng,omitempty"`
	PlaceID      string   `db:"place_id" json:"place_id,omitempty"`
	Address      string   `db:"address" json:"address,omitempty"`
}

// Location returns the seller's store position, or nil when unknown.
func (s *Seller) Location() *geo.Point {
	return geo.NewPoint(s.Lat, s.Lng)
}
