// Package query implements the list-endpoint filter language.
//
// Every listable record type publishes a static Table of field descriptors.
// Query-string parameters whose name matches a concrete field become criteria,
// and a record is kept only when it satisfies all of them:
//
//	?name=basket                  text: case-insensitive substring
//	?item=None                    relation: reference is unset
//	?vendor=2                     relation: reference equals 2
//	?price=ge:29.99               decimal comparison
//	?uploaded=bt:2000-01-01,2099-12-31  strict between
package query

// Kind classifies how a field's raw criterion is interpreted
type Kind string

const (
	KindText     Kind = "text"
	KindRelation Kind = "relation"
	KindDate     Kind = "date"
	KindDecimal  Kind = "decimal"
	KindInteger  Kind = "integer"
)

// Field describes one filterable attribute of T.
// Get returns the attribute's current value: string for text, a string, an
// int64 or nil for relations, time.Time for dates, decimal.Decimal for decimals
// and int64 for integers. Pointers and decimal.NullDecimal are accepted; a nil
// pointer or invalid NullDecimal counts as unset.
type Field[T any] struct {
	Name    string
	Kind    Kind
	Virtual bool // computed output only, never filtered on
	Get     func(*T) any
}

// Table is the ordered field list of a record type
type Table[T any] []Field[T]

// Lookup returns the named field
func (t Table[T]) Lookup(name string) (Field[T], bool) {
	for _, f := range t {
		if f.Name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}
