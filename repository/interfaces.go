package repository

import (
	"context"

	"groceryDeliveryManagement/models"
)

// SellerRepositoryI defines operations on Seller entities.
type SellerRepositoryI interface {
	Create(ctx context.Context, s *models.Seller) (*models.Seller, error)
	GetByID(ctx context.Context, id int64) (*models.Seller, error)
}

// ProductRepositoryI defines operations on Product entities.
type ProductRepositoryI interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	SellerOwnsAny(ctx context.Context, orderID, sellerID int64) (bool, error)
}

// OrderRepositoryI defines operations on Order entities.
type OrderRepositoryI interface {
	Create(ctx context.Context, o *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error
	UpdateDeliveryStatus(ctx context.Context, id int64, status models.DeliveryStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) error
	AssignAgent(ctx context.Context, orderID, agentID int64) error
	CancelDelivery(ctx context.Context, id int64, reason, by string) error
	SellerTotals(ctx context.Context, orderID int64) ([]SellerTotal, error)
}

// AgentRepositoryI defines operations on DeliveryAgent entities.
// AcquireSlot must be atomic relative to concurrent acquisitions: the
// increment is guarded by the capacity cap in a single conditional update.
type AgentRepositoryI interface {
	Create(ctx context.Context, a *models.DeliveryAgent) (*models.DeliveryAgent, error)
	GetByID(ctx context.Context, id int64) (*models.DeliveryAgent, error)
	ListAvailable(ctx context.Context) ([]models.DeliveryAgent, error)
	AcquireSlot(ctx context.Context, id int64) (bool, error)
	ReleaseSlot(ctx context.Context, id int64) error
	CompleteDelivery(ctx context.Context, id int64) error
}

// SettingsRepositoryI reads and writes the platform settings singleton.
type SettingsRepositoryI interface {
	Get(ctx context.Context) (*models.PlatformSettings, error)
	Upsert(ctx context.Context, s *models.PlatformSettings) error
}

// EarningRepositoryI defines operations on EarningLog records.
type EarningRepositoryI interface {
	FindByOrder(ctx context.Context, orderID int64) ([]models.EarningLog, error)
	UpsertSeller(ctx context.Context, orderID, sellerID int64, itemTotal, commission, net float64) error
	UpsertAgent(ctx context.Context, orderID, agentID int64, deliveryCharge, net float64) error
}
