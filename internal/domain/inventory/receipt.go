package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain/query"
	"github.com/stockroom/backend/internal/domain/shared"
)

// ReceiptStatus is the lifecycle state of a point-of-sale receipt
type ReceiptStatus string

const (
	ReceiptOpen     ReceiptStatus = "OPEN"
	ReceiptHold     ReceiptStatus = "HOLD"
	ReceiptComplete ReceiptStatus = "CMPL"
	ReceiptVoid     ReceiptStatus = "VOID"
)

// ParseReceiptStatus accepts only the known status codes
func ParseReceiptStatus(s string) (ReceiptStatus, error) {
	switch st := ReceiptStatus(s); st {
	case ReceiptOpen, ReceiptHold, ReceiptComplete, ReceiptVoid:
		return st, nil
	}
	return "", shared.NewFieldError("status", MsgInvalidStatus(s))
}

// Receipt is a point-of-sale transaction
type Receipt struct {
	ID      int64
	Count   int64
	Amount  decimal.Decimal
	Status  ReceiptStatus
	Created time.Time
}

// ReceiptFields is the filter table of receipts
var ReceiptFields = query.Table[Receipt]{
	{Name: "id", Kind: query.KindInteger, Get: func(r *Receipt) any { return r.ID }},
	{Name: "count", Kind: query.KindInteger, Get: func(r *Receipt) any { return r.Count }},
	{Name: "amount", Kind: query.KindDecimal, Get: func(r *Receipt) any { return r.Amount }},
	{Name: "status", Kind: query.KindText, Get: func(r *Receipt) any { return string(r.Status) }},
	{Name: "created", Kind: query.KindDate, Get: func(r *Receipt) any { return r.Created }},
}

// ItemSale is one item line of a receipt
type ItemSale struct {
	ID        int64
	ReceiptID int64
	ItemID    string
	Count     int64
	Amount    decimal.Decimal
	Adjusted  decimal.NullDecimal
}

// ItemSaleFields is the filter table of item sales
var ItemSaleFields = query.Table[ItemSale]{
	{Name: "id", Kind: query.KindInteger, Get: func(s *ItemSale) any { return s.ID }},
	{Name: "receipt", Kind: query.KindRelation, Get: func(s *ItemSale) any { return s.ReceiptID }},
	{Name: "item", Kind: query.KindRelation, Get: func(s *ItemSale) any { return s.ItemID }},
	{Name: "count", Kind: query.KindInteger, Get: func(s *ItemSale) any { return s.Count }},
	{Name: "amount", Kind: query.KindDecimal, Get: func(s *ItemSale) any { return s.Amount }},
	{Name: "adjusted", Kind: query.KindDecimal, Get: func(s *ItemSale) any { return s.Adjusted }},
}
