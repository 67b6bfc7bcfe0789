package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
)

// GormInventoryStore implements inventory.Store over one GORM handle.
// Inside Atomic every repository shares the transaction.
type GormInventoryStore struct {
	db *gorm.DB
}

// NewGormInventoryStore creates a new GormInventoryStore
func NewGormInventoryStore(db *gorm.DB) *GormInventoryStore {
	return &GormInventoryStore{db: db}
}

// Atomic runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormInventoryStore) Atomic(ctx context.Context, fn func(repos inventory.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormInventoryStore(tx))
	})
}

// Identifiers returns the identifier repository
func (s *GormInventoryStore) Identifiers() inventory.IdentifierRepository {
	return NewGormIdentifierRepository(s.db)
}

// Locations returns the location repository
func (s *GormInventoryStore) Locations() inventory.LocationRepository {
	return NewGormLocationRepository(s.db)
}

// Suppliers returns the supplier repository
func (s *GormInventoryStore) Suppliers() inventory.SupplierRepository {
	return NewGormSupplierRepository(s.db)
}

// Items returns the item template repository
func (s *GormInventoryStore) Items() inventory.ItemRepository {
	return NewGormItemRepository(s.db)
}

// Pictures returns the picture repository
func (s *GormInventoryStore) Pictures() inventory.PictureRepository {
	return NewGormPictureRepository(s.db)
}

// StockBooks returns the stock record repository
func (s *GormInventoryStore) StockBooks() inventory.StockBookRepository {
	return NewGormStockBookRepository(s.db)
}

// Prices returns the price repository
func (s *GormInventoryStore) Prices() inventory.PriceRepository {
	return NewGormPriceRepository(s.db)
}

// Invoices returns the invoice repository
func (s *GormInventoryStore) Invoices() inventory.InvoiceRepository {
	return NewGormInvoiceRepository(s.db)
}

// Purchases returns the purchase repository
func (s *GormInventoryStore) Purchases() inventory.PurchaseRepository {
	return NewGormPurchaseRepository(s.db)
}

// Receipts returns the receipt repository
func (s *GormInventoryStore) Receipts() inventory.ReceiptRepository {
	return NewGormReceiptRepository(s.db)
}

// ItemSales returns the item sale repository
func (s *GormInventoryStore) ItemSales() inventory.ItemSaleRepository {
	return NewGormItemSaleRepository(s.db)
}

// Ensure GormInventoryStore implements Store
var _ inventory.Store = (*GormInventoryStore)(nil)
