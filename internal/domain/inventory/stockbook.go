package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain/query"
)

// StockBook holds the on-hand quantity of one item
type StockBook struct {
	ItemID     string
	LocationID *string
	Units      decimal.NullDecimal
	Eighths    *int16
	Created    time.Time
	Updated    time.Time
}

// MaxEighths is the largest sub-unit count short of a whole unit
const MaxEighths = 7

// EighthsFrom narrows n to an eighths count. Anything outside 0..MaxEighths
// is reported as unreadable.
func EighthsFrom(n int64) (int16, bool) {
	if n < 0 || n > MaxEighths {
		return 0, false
	}
	return int16(n), true
}

// SetEighths records a sub-unit quantity. Only yardage goods are measured in
// eighths; for anything else the value is cleared whatever was supplied.
func (s *StockBook) SetEighths(yardage bool, eighths *int16) {
	if !yardage {
		s.Eighths = nil
		return
	}
	s.Eighths = eighths
}

// UnitsDiffer reports whether units would change the stored quantity
func (s *StockBook) UnitsDiffer(units decimal.Decimal) bool {
	return !s.Units.Valid || !s.Units.Decimal.Equal(units)
}

// StockBookFields is the filter table of stock records
var StockBookFields = query.Table[StockBook]{
	{Name: "itm", Kind: query.KindRelation, Get: func(s *StockBook) any { return s.ItemID }},
	{Name: "loc", Kind: query.KindRelation, Get: func(s *StockBook) any { return s.LocationID }},
	{Name: "units", Kind: query.KindDecimal, Get: func(s *StockBook) any { return s.Units }},
	{Name: "eighths", Kind: query.KindInteger, Get: func(s *StockBook) any { return s.Eighths }},
	{Name: "created", Kind: query.KindDate, Get: func(s *StockBook) any { return s.Created }},
	{Name: "updated", Kind: query.KindDate, Get: func(s *StockBook) any { return s.Updated }},
}
