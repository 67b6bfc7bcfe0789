package inventory

import (
	"context"
)

// Repositories return shared.ErrNotFound when a single record lookup misses
// and *shared.ConflictError when a write breaks a unique constraint.

// IdentifierRepository persists barcodes
type IdentifierRepository interface {
	FindByBarcode(ctx context.Context, barcode string) (*Identifier, error)
	FindByLinkedCode(ctx context.Context, code string) (*Identifier, error)
	// MaxBarcode returns the greatest all-digit barcode of the class, "" when there is none
	MaxBarcode(ctx context.Context, class Class) (string, error)
	FindAllInClass(ctx context.Context, class Class) ([]Identifier, error)
	Create(ctx context.Context, ident *Identifier) error
	SetLinkedCode(ctx context.Context, barcode string, code *string) error
}

// LocationRepository persists locations
type LocationRepository interface {
	FindByBarcode(ctx context.Context, barcode string) (*Location, error)
	FindByName(ctx context.Context, name string) (*Location, error)
	FindAll(ctx context.Context) ([]Location, error)
	FindPage(ctx context.Context, offset, limit int) ([]Location, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, loc *Location) error
	Save(ctx context.Context, loc *Location) error
}

// SupplierRepository persists suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id int64) (*Supplier, error)
	FindByName(ctx context.Context, name string) (*Supplier, error)
	FindAll(ctx context.Context) ([]Supplier, error)
	FindPage(ctx context.Context, offset, limit int) ([]Supplier, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, s *Supplier) error
	Save(ctx context.Context, s *Supplier) error
}

// ItemRepository persists item templates. Returned items carry the linked
// code of their identifier.
type ItemRepository interface {
	FindByBarcode(ctx context.Context, barcode string) (*ItemTemplate, error)
	FindByDescription(ctx context.Context, description string) (*ItemTemplate, error)
	FindAll(ctx context.Context) ([]ItemTemplate, error)
	Create(ctx context.Context, item *ItemTemplate) error
	Save(ctx context.Context, item *ItemTemplate) error
}

// PictureRepository persists pictures
type PictureRepository interface {
	FindByID(ctx context.Context, id int64) (*Picture, error)
	FindAll(ctx context.Context) ([]Picture, error)
	Create(ctx context.Context, p *Picture) error
	Save(ctx context.Context, p *Picture) error
}

// StockBookRepository persists stock records keyed by item barcode
type StockBookRepository interface {
	FindByItem(ctx context.Context, itemID string) (*StockBook, error)
	FindAll(ctx context.Context) ([]StockBook, error)
	Create(ctx context.Context, s *StockBook) error
	Save(ctx context.Context, s *StockBook) error
}

// PriceRepository persists prices keyed by item barcode
type PriceRepository interface {
	FindByItem(ctx context.Context, itemID string) (*Price, error)
	FindAll(ctx context.Context) ([]Price, error)
	Create(ctx context.Context, p *Price) error
	Save(ctx context.Context, p *Price) error
}

// InvoiceRepository persists invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id int64) (*Invoice, error)
	FindAll(ctx context.Context) ([]Invoice, error)
	MaxID(ctx context.Context) (int64, error)
	Create(ctx context.Context, inv *Invoice) error
	Save(ctx context.Context, inv *Invoice) error
}

// PurchaseRepository persists purchase lines
type PurchaseRepository interface {
	FindByID(ctx context.Context, id int64) (*Purchase, error)
	FindByInvoiceAndItem(ctx context.Context, invoiceID int64, itemID string) (*Purchase, error)
	FindLatestForItem(ctx context.Context, itemID string) (*Purchase, error)
	FindAll(ctx context.Context) ([]Purchase, error)
	Create(ctx context.Context, p *Purchase) error
	Save(ctx context.Context, p *Purchase) error
}

// ReceiptRepository persists receipts
type ReceiptRepository interface {
	FindByID(ctx context.Context, id int64) (*Receipt, error)
	FindAll(ctx context.Context) ([]Receipt, error)
	MaxID(ctx context.Context) (int64, error)
	Create(ctx context.Context, r *Receipt) error
	Save(ctx context.Context, r *Receipt) error
}

// ItemSaleRepository persists receipt lines
type ItemSaleRepository interface {
	FindByID(ctx context.Context, id int64) (*ItemSale, error)
	FindAll(ctx context.Context) ([]ItemSale, error)
	Create(ctx context.Context, s *ItemSale) error
	Save(ctx context.Context, s *ItemSale) error
}

// Repositories gives access to every inventory repository over one connection
// or one transaction.
type Repositories interface {
	Identifiers() IdentifierRepository
	Locations() LocationRepository
	Suppliers() SupplierRepository
	Items() ItemRepository
	Pictures() PictureRepository
	StockBooks() StockBookRepository
	Prices() PriceRepository
	Invoices() InvoiceRepository
	Purchases() PurchaseRepository
	Receipts() ReceiptRepository
	ItemSales() ItemSaleRepository
}

// Store is the inventory persistence boundary.
// Atomic runs fn inside one transaction; an error from fn rolls it back.
type Store interface {
	Repositories
	Atomic(ctx context.Context, fn func(repos Repositories) error) error
}
