package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain/inventory"
)

// IdentifierModel is the persistence model for barcodes.
type IdentifierModel struct {
	Barcode    string    `gorm:"primaryKey;size:8"`
	LinkedCode *string   `gorm:"size:16;index:idx_identifiers_linked_code"`
	Created    time.Time `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (IdentifierModel) TableName() string {
	return "identifiers"
}

// ToDomain converts the persistence model to a domain Identifier.
func (m *IdentifierModel) ToDomain() *inventory.Identifier {
	return &inventory.Identifier{
		Barcode:    m.Barcode,
		LinkedCode: m.LinkedCode,
		Created:    m.Created,
	}
}

// IdentifierModelFromDomain converts a domain Identifier to the persistence model.
func IdentifierModelFromDomain(i *inventory.Identifier) *IdentifierModel {
	return &IdentifierModel{
		Barcode:    i.Barcode,
		LinkedCode: i.LinkedCode,
		Created:    i.Created,
	}
}

// LocationModel is the persistence model for locations.
type LocationModel struct {
	IdentifierID string `gorm:"primaryKey;size:8"`
	Name         string `gorm:"size:64;not null;uniqueIndex:uq_locations_name"`
	Description  string `gorm:"size:128;not null;default:''"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string {
	return "locations"
}

// ToDomain converts the persistence model to a domain Location.
func (m *LocationModel) ToDomain() *inventory.Location {
	return &inventory.Location{
		Barcode:     m.IdentifierID,
		Name:        m.Name,
		Description: m.Description,
	}
}

// LocationModelFromDomain converts a domain Location to the persistence model.
func LocationModelFromDomain(l *inventory.Location) *LocationModel {
	return &LocationModel{
		IdentifierID: l.Barcode,
		Name:         l.Name,
		Description:  l.Description,
	}
}

// SupplierModel is the persistence model for suppliers.
type SupplierModel struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:64;not null;uniqueIndex:uq_suppliers_name"`
	City  string `gorm:"size:64;not null;default:''"`
	State string `gorm:"size:2;not null;default:''"`
	Zip5  string `gorm:"size:5;not null;default:''"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier.
func (m *SupplierModel) ToDomain() *inventory.Supplier {
	return &inventory.Supplier{ID: m.ID, Name: m.Name, City: m.City, State: m.State, Zip5: m.Zip5}
}

// SupplierModelFromDomain converts a domain Supplier to the persistence model.
func SupplierModelFromDomain(s *inventory.Supplier) *SupplierModel {
	return &SupplierModel{ID: s.ID, Name: s.Name, City: s.City, State: s.State, Zip5: s.Zip5}
}

// ItemTemplateModel is the persistence model for item templates.
// LinkedCode is read through a join on identifiers and never written here.
type ItemTemplateModel struct {
	IdentifierID string  `gorm:"primaryKey;size:8"`
	Description  string  `gorm:"size:128;not null;uniqueIndex:uq_item_templates_description"`
	Brand        string  `gorm:"size:64;not null;default:''"`
	Content      string  `gorm:"size:64;not null;default:''"`
	PartUnit     string  `gorm:"size:32;not null;default:''"`
	Yardage      bool    `gorm:"not null"`
	OutOfStock   bool    `gorm:"not null"`
	LinkedCode   *string `gorm:"->;-:migration"`
}

// TableName returns the table name for GORM
func (ItemTemplateModel) TableName() string {
	return "item_templates"
}

// ToDomain converts the persistence model to a domain ItemTemplate.
func (m *ItemTemplateModel) ToDomain() *inventory.ItemTemplate {
	return &inventory.ItemTemplate{
		Barcode:     m.IdentifierID,
		Description: m.Description,
		Brand:       m.Brand,
		Content:     m.Content,
		PartUnit:    m.PartUnit,
		Yardage:     m.Yardage,
		OutOfStock:  m.OutOfStock,
		LinkedCode:  m.LinkedCode,
	}
}

// ItemTemplateModelFromDomain converts a domain ItemTemplate to the persistence model.
func ItemTemplateModelFromDomain(it *inventory.ItemTemplate) *ItemTemplateModel {
	return &ItemTemplateModel{
		IdentifierID: it.Barcode,
		Description:  it.Description,
		Brand:        it.Brand,
		Content:      it.Content,
		PartUnit:     it.PartUnit,
		Yardage:      it.Yardage,
		OutOfStock:   it.OutOfStock,
	}
}

// PictureModel is the persistence model for uploaded pictures.
type PictureModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Photo    string    `gorm:"size:255;not null"`
	ItemID   *string   `gorm:"size:8;index"`
	Uploaded time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PictureModel) TableName() string {
	return "pictures"
}

// ToDomain converts the persistence model to a domain Picture.
func (m *PictureModel) ToDomain() *inventory.Picture {
	return &inventory.Picture{ID: m.ID, Photo: m.Photo, ItemID: m.ItemID, Uploaded: m.Uploaded}
}

// PictureModelFromDomain converts a domain Picture to the persistence model.
func PictureModelFromDomain(p *inventory.Picture) *PictureModel {
	return &PictureModel{ID: p.ID, Photo: p.Photo, ItemID: p.ItemID, Uploaded: p.Uploaded}
}

// StockBookModel is the persistence model for stock records.
type StockBookModel struct {
	ItmID   string              `gorm:"primaryKey;size:8"`
	LocID   *string             `gorm:"size:8;index"`
	Units   decimal.NullDecimal `gorm:"type:decimal(8,2)"`
	Eighths *int16
	Created time.Time `gorm:"not null;autoCreateTime"`
	Updated time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (StockBookModel) TableName() string {
	return "stock_books"
}

// ToDomain converts the persistence model to a domain StockBook.
func (m *StockBookModel) ToDomain() *inventory.StockBook {
	return &inventory.StockBook{
		ItemID:     m.ItmID,
		LocationID: m.LocID,
		Units:      m.Units,
		Eighths:    m.Eighths,
		Created:    m.Created,
		Updated:    m.Updated,
	}
}

// StockBookModelFromDomain converts a domain StockBook to the persistence model.
func StockBookModelFromDomain(s *inventory.StockBook) *StockBookModel {
	return &StockBookModel{
		ItmID:   s.ItemID,
		LocID:   s.LocationID,
		Units:   s.Units,
		Eighths: s.Eighths,
		Created: s.Created,
		Updated: s.Updated,
	}
}

// PriceModel is the persistence model for prices.
type PriceModel struct {
	ItmID   string              `gorm:"primaryKey;size:8"`
	Price   decimal.NullDecimal `gorm:"type:decimal(8,2)"`
	Created time.Time           `gorm:"not null;autoCreateTime"`
	Updated time.Time           `gorm:"not null;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (PriceModel) TableName() string {
	return "prices"
}

// ToDomain converts the persistence model to a domain Price.
func (m *PriceModel) ToDomain() *inventory.Price {
	return &inventory.Price{ItemID: m.ItmID, Price: m.Price, Created: m.Created, Updated: m.Updated}
}

// PriceModelFromDomain converts a domain Price to the persistence model.
func PriceModelFromDomain(p *inventory.Price) *PriceModel {
	return &PriceModel{ItmID: p.ItemID, Price: p.Price, Created: p.Created, Updated: p.Updated}
}

// InvoiceModel is the persistence model for invoices. IDs are assigned by the service.
type InvoiceModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement:false"`
	VendorID int64     `gorm:"not null;index"`
	Received time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
func (m *InvoiceModel) ToDomain() *inventory.Invoice {
	return &inventory.Invoice{ID: m.ID, VendorID: m.VendorID, Received: m.Received}
}

// InvoiceModelFromDomain converts a domain Invoice to the persistence model.
func InvoiceModelFromDomain(i *inventory.Invoice) *InvoiceModel {
	return &InvoiceModel{ID: i.ID, VendorID: i.VendorID, Received: i.Received}
}

// PurchaseModel is the persistence model for purchase lines.
type PurchaseModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	InvoiceID int64           `gorm:"not null;uniqueIndex:uq_purchases_invoice_item,priority:1"`
	ItemID    string          `gorm:"size:8;not null;uniqueIndex:uq_purchases_invoice_item,priority:2"`
	Cost      decimal.Decimal `gorm:"type:decimal(8,2);not null"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the persistence model to a domain Purchase.
func (m *PurchaseModel) ToDomain() *inventory.Purchase {
	return &inventory.Purchase{ID: m.ID, InvoiceID: m.InvoiceID, ItemID: m.ItemID, Cost: m.Cost}
}

// PurchaseModelFromDomain converts a domain Purchase to the persistence model.
func PurchaseModelFromDomain(p *inventory.Purchase) *PurchaseModel {
	return &PurchaseModel{ID: p.ID, InvoiceID: p.InvoiceID, ItemID: p.ItemID, Cost: p.Cost}
}

// ReceiptModel is the persistence model for receipts. IDs are assigned by the service.
type ReceiptModel struct {
	ID      int64           `gorm:"primaryKey;autoIncrement:false"`
	Count   int64           `gorm:"not null"`
	Amount  decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	Status  string          `gorm:"size:4;not null"`
	Created time.Time       `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToDomain converts the persistence model to a domain Receipt.
func (m *ReceiptModel) ToDomain() *inventory.Receipt {
	return &inventory.Receipt{
		ID:      m.ID,
		Count:   m.Count,
		Amount:  m.Amount,
		Status:  inventory.ReceiptStatus(m.Status),
		Created: m.Created,
	}
}

// ReceiptModelFromDomain converts a domain Receipt to the persistence model.
func ReceiptModelFromDomain(r *inventory.Receipt) *ReceiptModel {
	return &ReceiptModel{
		ID:      r.ID,
		Count:   r.Count,
		Amount:  r.Amount,
		Status:  string(r.Status),
		Created: r.Created,
	}
}

// ItemSaleModel is the persistence model for receipt lines.
type ItemSaleModel struct {
	ID        int64               `gorm:"primaryKey;autoIncrement"`
	ReceiptID int64               `gorm:"not null;index"`
	ItemID    string              `gorm:"size:8;not null;index"`
	Count     int64               `gorm:"not null"`
	Amount    decimal.Decimal     `gorm:"type:decimal(8,2);not null"`
	Adjusted  decimal.NullDecimal `gorm:"type:decimal(8,2)"`
}

// TableName returns the table name for GORM
func (ItemSaleModel) TableName() string {
	return "item_sales"
}

// ToDomain converts the persistence model to a domain ItemSale.
func (m *ItemSaleModel) ToDomain() *inventory.ItemSale {
	return &inventory.ItemSale{
		ID:        m.ID,
		ReceiptID: m.ReceiptID,
		ItemID:    m.ItemID,
		Count:     m.Count,
		Amount:    m.Amount,
		Adjusted:  m.Adjusted,
	}
}

// ItemSaleModelFromDomain converts a domain ItemSale to the persistence model.
func ItemSaleModelFromDomain(s *inventory.ItemSale) *ItemSaleModel {
	return &ItemSaleModel{
		ID:        s.ID,
		ReceiptID: s.ReceiptID,
		ItemID:    s.ItemID,
		Count:     s.Count,
		Amount:    s.Amount,
		Adjusted:  s.Adjusted,
	}
}

// InventoryModels lists every inventory model in dependency order for AutoMigrate
func InventoryModels() []any {
	return []any{
		&IdentifierModel{},
		&LocationModel{},
		&SupplierModel{},
		&ItemTemplateModel{},
		&PictureModel{},
		&StockBookModel{},
		&PriceModel{},
		&InvoiceModel{},
		&PurchaseModel{},
		&ReceiptModel{},
		&ItemSaleModel{},
	}
}
