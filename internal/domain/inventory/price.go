package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain/query"
)

// Price is the current selling price of one item
type Price struct {
	ItemID  string
	Price   decimal.NullDecimal
	Created time.Time
	Updated time.Time
}

// Differs reports whether amount would change the stored price
func (p *Price) Differs(amount decimal.Decimal) bool {
	return !p.Price.Valid || !p.Price.Decimal.Equal(amount)
}

// PriceFields is the filter table of prices
var PriceFields = query.Table[Price]{
	{Name: "itm", Kind: query.KindRelation, Get: func(p *Price) any { return p.ItemID }},
	{Name: "price", Kind: query.KindDecimal, Get: func(p *Price) any { return p.Price }},
	{Name: "created", Kind: query.KindDate, Get: func(p *Price) any { return p.Created }},
	{Name: "updated", Kind: query.KindDate, Get: func(p *Price) any { return p.Updated }},
}
