package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain/query"
)

// Invoice is a delivery received from a supplier
type Invoice struct {
	ID       int64
	VendorID int64
	Received time.Time
}

// InvoiceFields is the filter table of invoices
var InvoiceFields = query.Table[Invoice]{
	{Name: "id", Kind: query.KindInteger, Get: func(i *Invoice) any { return i.ID }},
	{Name: "vendor", Kind: query.KindRelation, Get: func(i *Invoice) any { return i.VendorID }},
	{Name: "received", Kind: query.KindDate, Get: func(i *Invoice) any { return i.Received }},
}

// Purchase is one item line of an invoice. Each (invoice, item) pair occurs once;
// further postings against the pair add to Cost.
type Purchase struct {
	ID        int64
	InvoiceID int64
	ItemID    string
	Cost      decimal.Decimal
}

// AddCost accumulates a further posting against this line
func (p *Purchase) AddCost(amount decimal.Decimal) {
	p.Cost = p.Cost.Add(amount)
}

// PurchaseFields is the filter table of purchases
var PurchaseFields = query.Table[Purchase]{
	{Name: "id", Kind: query.KindInteger, Get: func(p *Purchase) any { return p.ID }},
	{Name: "invoice", Kind: query.KindRelation, Get: func(p *Purchase) any { return p.InvoiceID }},
	{Name: "item", Kind: query.KindRelation, Get: func(p *Purchase) any { return p.ItemID }},
	{Name: "cost", Kind: query.KindDecimal, Get: func(p *Purchase) any { return p.Cost }},
}
