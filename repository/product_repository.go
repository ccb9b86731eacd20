package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"groceryDeliveryManagement/models"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product. Category defaults to 'grocery' if empty.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if p == nil {
		return nil, errors.New("product is nil")
	}
	if p.Category == "" {
		p.Category = models.CategoryGrocery
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `INSERT INTO products (seller_id, name, category, price) VALUES (?,?,?,?)`,
		p.SellerID, p.Name, string(p.Category), p.Price)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var p models.Product
	var category string
	err := r.db.QueryRowContext(ctx, `SELECT id, seller_id, name, category, price FROM products WHERE id = ?`, id).
		Scan(&p.ID, &p.SellerID, &p.Name, &category, &p.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.Category = models.ProductCategory(category)
	return &p, nil
}

// SellerOwnsAny reports whether at least one of the order's line items
// references a product owned by the given seller.
func (r *ProductRepository) SellerOwnsAny(ctx context.Context, orderID, sellerID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var one int
	err := r.db.QueryRowContext(ctx, `
SELECT 1
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = ? AND p.seller_id = ?
LIMIT 1`, orderID, sellerID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
