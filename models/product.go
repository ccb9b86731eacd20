package models

// ProductCategory buckets products into the two delivery-charge categories.
type ProductCategory string

const (
	CategoryGrocery ProductCategory = "grocery"
	CategoryFood    ProductCategory = "food"
)

// Product represents a listed item sold by a seller. Order items snapshot
// the unit price at checkout; the product row is the ownership source of
// truth when validating seller operations.
type Product struct {
	ID       int64           `db:"id" json:"id"`
	SellerID int64           `db:"seller_id" json:"seller_id"`
	Name     string          `db:"name" json:"name"`
	Category ProductCategory `db:"category" json:"category"`
	Price    float64         `db:"price" json:"price"`
}
