package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"groceryDeliveryManagement/models"
)

type SellerRepository struct {
	db *sql.DB
}

func NewSellerRepository(db *sql.DB) *SellerRepository {
	return &SellerRepository{db: db}
}

// Create inserts a new seller.
func (r *SellerRepository) Create(ctx context.Context, s *models.Seller) (*models.Seller, error) {
	if s == nil {
		return nil, errors.New("seller is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `INSERT INTO sellers (business_name, approved, lat, lng, place_id, address) VALUES (?,?,?,?,?,?)`,
		s.BusinessName, s.Approved, s.Lat, s.Lng, nullableStr(s.PlaceID), nullableStr(s.Address))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	s.ID = id
	return s, nil
}

func (r *SellerRepository) GetByID(ctx context.Context, id int64) (*models.Seller, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var s models.Seller
	var lat, lng sql.NullFloat64
	var placeID, address sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT id, business_name, approved, lat, lng, place_id, address FROM sellers WHERE id = ?`, id).
		Scan(&s.ID, &s.BusinessName, &s.Approved, &lat, &lng, &placeID, &address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if lat.Valid {
		v := lat.Float64
		s.Lat = &v
	}
	if lng.Valid {
		v := lng.Float64
		s.Lng = &v
	}
	s.PlaceID = placeID.String
	s.Address = address.String
	return &s, nil
}
