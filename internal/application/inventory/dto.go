package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/inventory"
)

// IdentifierResponse represents an identifier record
type IdentifierResponse struct {
	Barcode    string    `json:"barcode"`
	LinkedCode *string   `json:"linked_code"`
	Created    time.Time `json:"created"`
}

// LocationResponse represents a location in API responses
type LocationResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Barcode     string `json:"barcode"`
	LocID       string `json:"locID"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip5  string `json:"zip5"`
}

// ItemResponse represents an item template in API responses
type ItemResponse struct {
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Content     string  `json:"content"`
	PartUnit    string  `json:"part_unit"`
	LinkedCode  *string `json:"linked_code"`
	Yardage     bool    `json:"yardage"`
	OutOfStock  bool    `json:"out_of_stock"`
	Barcode     string  `json:"barcode"`
	ItmID       string  `json:"itmID"`
}

// PictureResponse represents a picture. ItemID is null for a detached picture.
// URL is a short-lived download link, set on detail reads.
type PictureResponse struct {
	ID       int64   `json:"id"`
	Photo    string  `json:"photo"`
	ItemID   *string `json:"item_id"`
	Uploaded string  `json:"uploaded"`
	URL      string  `json:"url,omitempty"`
}

// StockBookResponse represents a stock record
type StockBookResponse struct {
	Itm     string    `json:"itm"`
	Loc     *string   `json:"loc"`
	Units   *string   `json:"units"`
	Eighths *int16    `json:"eighths"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// PriceResponse represents a price record
type PriceResponse struct {
	Itm     string    `json:"itm"`
	Price   *string   `json:"price"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// InvoiceResponse represents an invoice
type InvoiceResponse struct {
	ID       int64  `json:"id"`
	Vendor   int64  `json:"vendor"`
	Received string `json:"received"`
}

// PurchaseResponse represents a purchase line
type PurchaseResponse struct {
	ID      int64  `json:"id"`
	Invoice int64  `json:"invoice"`
	Item    string `json:"item"`
	Cost    string `json:"cost"`
}

// ReceiptResponse represents a point-of-sale receipt
type ReceiptResponse struct {
	ID      int64     `json:"id"`
	Count   int64     `json:"count"`
	Amount  string    `json:"amount"`
	Status  string    `json:"status"`
	Created time.Time `json:"created"`
}

// ItemSaleResponse represents a receipt line
type ItemSaleResponse struct {
	ID       int64   `json:"id"`
	Receipt  int64   `json:"receipt"`
	Item     string  `json:"item"`
	Count    int64   `json:"count"`
	Amount   string  `json:"amount"`
	Adjusted *string `json:"adjusted"`
}

// ItemDataResponse is the combined item view. Only Digitstring is set when
// the scanned code does not resolve to an item.
type ItemDataResponse struct {
	Digitstring string `json:"digitstring"`
	*ItemDataDetail
}

// ItemDataDetail carries the item together with its stock, price and latest cost
type ItemDataDetail struct {
	ItemResponse
	Loc     *string `json:"loc"`
	Units   *string `json:"units"`
	Eighths *int16  `json:"eighths"`
	Price   *string `json:"price"`
	Cost    *string `json:"cost"`
	Invoice *int64  `json:"invoice"`
}

// ItemDataResult reports the sub-records an item data post wrote
type ItemDataResult struct {
	Item      string             `json:"item"`
	StockBook *StockBookResponse `json:"StockBook,omitempty"`
	Purchase  *PurchaseResponse  `json:"purchase,omitempty"`
	Price     *PriceResponse     `json:"price,omitempty"`
}

// Upload is a file received with a picture create request
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func nullMoney(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := money(d.Decimal)
	return &s
}

func toIdentifierResponse(i *inventory.Identifier) IdentifierResponse {
	return IdentifierResponse{Barcode: i.Barcode, LinkedCode: i.LinkedCode, Created: i.Created}
}

func toLocationResponse(l *inventory.Location) LocationResponse {
	return LocationResponse{
		Name:        l.Name,
		Description: l.Description,
		Barcode:     l.Barcode,
		LocID:       inventory.IdentifierURL(l.Barcode),
	}
}

func toSupplierResponse(s *inventory.Supplier) SupplierResponse {
	return SupplierResponse{ID: s.ID, Name: s.Name, City: s.City, State: s.State, Zip5: s.Zip5}
}

func toItemResponse(it *inventory.ItemTemplate) ItemResponse {
	return ItemResponse{
		Description: it.Description,
		Brand:       it.Brand,
		Content:     it.Content,
		PartUnit:    it.PartUnit,
		LinkedCode:  it.LinkedCode,
		Yardage:     it.Yardage,
		OutOfStock:  it.OutOfStock,
		Barcode:     it.Barcode,
		ItmID:       inventory.IdentifierURL(it.Barcode),
	}
}

func toPictureResponse(p *inventory.Picture) PictureResponse {
	return PictureResponse{ID: p.ID, Photo: p.Photo, ItemID: p.ItemID, Uploaded: p.Uploaded.Format(time.DateOnly)}
}

func toStockBookResponse(s *inventory.StockBook) StockBookResponse {
	return StockBookResponse{
		Itm:     s.ItemID,
		Loc:     s.LocationID,
		Units:   nullMoney(s.Units),
		Eighths: s.Eighths,
		Created: s.Created,
		Updated: s.Updated,
	}
}

func toPriceResponse(p *inventory.Price) PriceResponse {
	return PriceResponse{Itm: p.ItemID, Price: nullMoney(p.Price), Created: p.Created, Updated: p.Updated}
}

func toInvoiceResponse(i *inventory.Invoice) InvoiceResponse {
	return InvoiceResponse{ID: i.ID, Vendor: i.VendorID, Received: i.Received.Format(time.DateOnly)}
}

func toPurchaseResponse(p *inventory.Purchase) PurchaseResponse {
	return PurchaseResponse{ID: p.ID, Invoice: p.InvoiceID, Item: p.ItemID, Cost: money(p.Cost)}
}

func toReceiptResponse(r *inventory.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:      r.ID,
		Count:   r.Count,
		Amount:  money(r.Amount),
		Status:  string(r.Status),
		Created: r.Created,
	}
}

func toItemSaleResponse(s *inventory.ItemSale) ItemSaleResponse {
	return ItemSaleResponse{
		ID:       s.ID,
		Receipt:  s.ReceiptID,
		Item:     s.ItemID,
		Count:    s.Count,
		Amount:   money(s.Amount),
		Adjusted: nullMoney(s.Adjusted),
	}
}

// mapSlice converts each record with fn
func mapSlice[T, R any](records []T, fn func(*T) R) []R {
	out := make([]R, 0, len(records))
	for i := range records {
		out = append(out, fn(&records[i]))
	}
	return out
}
