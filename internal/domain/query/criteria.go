package query

import (
	"net/url"
)

// Criterion pairs a field with the raw value supplied for it
type Criterion[T any] struct {
	Field Field[T]
	Raw   string
}

// Criteria is an ordered conjunction of criteria
type Criteria[T any] []Criterion[T]

// Derive builds criteria from query-string parameters.
// Virtual fields and parameters that name no field are ignored.
func Derive[T any](table Table[T], params url.Values) Criteria[T] {
	var criteria Criteria[T]
	for _, f := range table {
		if f.Virtual {
			continue
		}
		vals, ok := params[f.Name]
		if !ok || len(vals) == 0 {
			continue
		}
		criteria = append(criteria, Criterion[T]{Field: f, Raw: vals[0]})
	}
	return criteria
}

// Has reports whether a criterion exists for the named field
func (c Criteria[T]) Has(name string) bool {
	for _, cr := range c {
		if cr.Field.Name == name {
			return true
		}
	}
	return false
}

// Match reports whether rec satisfies every criterion, stopping at the first miss
func (c Criteria[T]) Match(rec *T) bool {
	for _, cr := range c {
		if !Evaluate(cr.Field.Kind, cr.Raw, cr.Field.Get(rec)) {
			return false
		}
	}
	return true
}

// Apply returns the records that satisfy all criteria, preserving order
func (c Criteria[T]) Apply(records []T) []T {
	if len(c) == 0 {
		return records
	}
	kept := make([]T, 0, len(records))
	for i := range records {
		if c.Match(&records[i]) {
			kept = append(kept, records[i])
		}
	}
	return kept
}
