package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shelf struct {
	Barcode    string
	LinkedCode *string
	Item       *string
	Vendor     int64
	Price      decimal.NullDecimal
	Count      int
	Uploaded   time.Time
}

var shelfTable = Table[shelf]{
	{Name: "barcode", Kind: KindText, Get: func(s *shelf) any { return s.Barcode }},
	{Name: "linked_code", Kind: KindText, Get: func(s *shelf) any { return s.LinkedCode }},
	{Name: "created", Kind: KindDate, Virtual: true, Get: func(s *shelf) any { return s.Uploaded }},
	{Name: "item", Kind: KindRelation, Get: func(s *shelf) any { return s.Item }},
	{Name: "vendor", Kind: KindRelation, Get: func(s *shelf) any { return s.Vendor }},
	{Name: "price", Kind: KindDecimal, Get: func(s *shelf) any { return s.Price }},
	{Name: "count", Kind: KindInteger, Get: func(s *shelf) any { return s.Count }},
	{Name: "uploaded", Kind: KindDate, Get: func(s *shelf) any { return s.Uploaded }},
}

func TestDerive(t *testing.T) {
	params, err := url.ParseQuery("barcode=1234&linked_code=5678&not_a=90&created=eq:2024-01-01")
	require.NoError(t, err)

	criteria := Derive(shelfTable, params)

	assert.True(t, criteria.Has("barcode"))
	assert.True(t, criteria.Has("linked_code"))
	assert.False(t, criteria.Has("not_a"), "unknown parameters are ignored")
	assert.False(t, criteria.Has("created"), "virtual fields are ignored")
	assert.Len(t, criteria, 2)
}

func TestEvaluate(t *testing.T) {
	today := time.Now()
	item := "1000028"

	tests := []struct {
		name  string
		kind  Kind
		raw   string
		value any
		want  bool
	}{
		{"text exact", KindText, "1000015", "1000015", true},
		{"text case-insensitive substring", KindText, "basket", "Basket 1", true},
		{"text miss", KindText, "shelf", "Basket 1", false},
		{"text nil pointer", KindText, "x", (*string)(nil), false},
		{"date ge", KindDate, "ge:2000-01-01", today, true},
		{"date between", KindDate, "bt:2000-01-01,2099-12-31", today, true},
		{"date eq same day", KindDate, "eq:" + today.Format("2006-01-02"), today, true},
		{"date eq other day", KindDate, "eq:" + today.AddDate(0, 0, 2).Format("2006-01-02"), today, false},
		{"date malformed operand", KindDate, "ge:yesterday", today, false},
		{"decimal le", KindDecimal, "le:29.99", decimal.RequireFromString("7.95"), true},
		{"decimal between", KindDecimal, "bt:4.95,29.99", decimal.RequireFromString("7.95"), true},
		{"decimal between low edge", KindDecimal, "bt:4.95,29.99", decimal.RequireFromString("4.95"), false},
		{"decimal between high edge", KindDecimal, "bt:4.95,29.99", decimal.RequireFromString("29.99"), false},
		{"decimal null", KindDecimal, "ge:0", decimal.NullDecimal{}, false},
		{"decimal ge nullable", KindDecimal, "ge:24.99", decimal.NewNullDecimal(decimal.RequireFromString("24.99")), true},
		{"integer lt", KindInteger, "lt:5", 3, true},
		{"integer between", KindInteger, "bt:1,9", 5, true},
		{"integer unknown comparator", KindInteger, "or:5", 5, false},
		{"integer missing comparator", KindInteger, "5", 5, false},
		{"integer between missing hi", KindInteger, "bt:1", 5, false},
		{"relation None on unset", KindRelation, "None", (*string)(nil), true},
		{"relation None on set", KindRelation, "None", &item, false},
		{"relation string match", KindRelation, "1000028", &item, true},
		{"relation integer match", KindRelation, "2", int64(2), true},
		{"relation integer match with padding", KindRelation, "02", int64(2), true},
		{"relation miss", KindRelation, "3", int64(2), false},
		{"relation unset vs value", KindRelation, "3", nil, false},
		{"unknown kind", Kind("blob"), "x", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.kind, tt.raw, tt.value))
		})
	}
}

func TestCompareValues(t *testing.T) {
	assert.False(t, CompareOrdered("or", 1, 2), "'or' is not a comparator")
	assert.True(t, CompareOrdered("lt", 5, 25))
	assert.True(t, CompareOrdered("le", 15, 15))
	assert.True(t, CompareOrdered("gt", 25, 10))
	assert.True(t, CompareOrdered("ge", 15, 15))
	assert.True(t, CompareOrdered("eq", 7, 7))
	assert.True(t, CompareOrdered("bt", 2, 1, 3))
	assert.False(t, CompareOrdered("bt", 1, 1, 3))
	assert.False(t, CompareOrdered("bt", 2, 1))
	assert.False(t, CompareOrdered[int]("eq", 2))
}

func TestCriteria_Apply(t *testing.T) {
	item := "1000028"
	records := []shelf{
		{Barcode: "1007", Count: 1},
		{Barcode: "1010", Count: 4, Item: &item},
		{Barcode: "1023", Count: 9},
	}

	t.Run("no criteria keeps everything", func(t *testing.T) {
		assert.Len(t, Criteria[shelf](nil).Apply(records), 3)
	})

	t.Run("all criteria must hold", func(t *testing.T) {
		params := url.Values{"item": {"None"}, "count": {"lt:5"}}
		kept := Derive(shelfTable, params).Apply(records)
		require.Len(t, kept, 1)
		assert.Equal(t, "1007", kept[0].Barcode)
	})

	t.Run("relation by value", func(t *testing.T) {
		kept := Derive(shelfTable, url.Values{"item": {item}}).Apply(records)
		require.Len(t, kept, 1)
		assert.Equal(t, "1010", kept[0].Barcode)
	})
}

func TestTable_Lookup(t *testing.T) {
	f, ok := shelfTable.Lookup("price")
	require.True(t, ok)
	assert.Equal(t, KindDecimal, f.Kind)

	_, ok = shelfTable.Lookup("nope")
	assert.False(t, ok)
}
