package query

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NullRelation is the raw relation value matching an unset reference
const NullRelation = "None"

const dateLayout = "2006-01-02"

// Comparators understood by ordered fields
const (
	OpEqual        = "eq"
	OpGreaterEqual = "ge"
	OpGreater      = "gt"
	OpLessEqual    = "le"
	OpLess         = "lt"
	OpBetween      = "bt"
)

// Evaluate tests a single value against a raw criterion of the given kind.
// Malformed criteria and unknown comparators never match.
func Evaluate(kind Kind, raw string, value any) bool {
	value = unwrap(value)

	switch kind {
	case KindText:
		return matchText(raw, value)
	case KindRelation:
		return matchRelation(raw, value)
	case KindDate:
		v, ok := value.(time.Time)
		if !ok {
			return false
		}
		return matchOrdered(raw, civilDate(v), parseDate, compareTime)
	case KindDecimal:
		v, ok := toDecimal(value)
		if !ok {
			return false
		}
		return matchOrdered(raw, v, decimal.NewFromString, func(a, b decimal.Decimal) int { return a.Cmp(b) })
	case KindInteger:
		v, ok := toInt(value)
		if !ok {
			return false
		}
		return matchOrdered(raw, v, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }, cmp.Compare[int64])
	}
	return false
}

// CompareValues applies op to value and its operands using compare.
// Between takes two operands and is strict on both ends.
func CompareValues[V any](op string, compare func(a, b V) int, value V, operands ...V) bool {
	if len(operands) == 0 {
		return false
	}
	c := compare(value, operands[0])
	switch op {
	case OpEqual:
		return c == 0
	case OpGreaterEqual:
		return c >= 0
	case OpGreater:
		return c > 0
	case OpLessEqual:
		return c <= 0
	case OpLess:
		return c < 0
	case OpBetween:
		if len(operands) < 2 {
			return false
		}
		return c > 0 && compare(value, operands[1]) < 0
	}
	return false
}

// CompareOrdered is CompareValues for naturally ordered types
func CompareOrdered[V cmp.Ordered](op string, value V, operands ...V) bool {
	return CompareValues(op, cmp.Compare[V], value, operands...)
}

// splitCriterion separates "op:operand" or "bt:lo,hi"
func splitCriterion(raw string) (op string, operands []string, ok bool) {
	op, rest, found := strings.Cut(raw, ":")
	if !found {
		return "", nil, false
	}
	if op == OpBetween {
		lo, hi, found := strings.Cut(rest, ",")
		if !found {
			return "", nil, false
		}
		return op, []string{strings.TrimSpace(lo), strings.TrimSpace(hi)}, true
	}
	return op, []string{strings.TrimSpace(rest)}, true
}

func matchOrdered[V any](raw string, value V, parse func(string) (V, error), compare func(a, b V) int) bool {
	op, parts, ok := splitCriterion(raw)
	if !ok {
		return false
	}
	operands := make([]V, 0, len(parts))
	for _, p := range parts {
		v, err := parse(p)
		if err != nil {
			return false
		}
		operands = append(operands, v)
	}
	return CompareValues(op, compare, value, operands...)
}

func matchText(raw string, value any) bool {
	if value == nil {
		return false
	}
	return strings.Contains(strings.ToLower(fmt.Sprint(value)), strings.ToLower(raw))
}

func matchRelation(raw string, value any) bool {
	if raw == NullRelation {
		return value == nil
	}
	if value == nil {
		return false
	}
	s := fmt.Sprint(value)
	if s == raw {
		return true
	}
	want, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return false
	}
	got, ok := toInt(value)
	if !ok {
		got, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return false
		}
	}
	return got == want
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// civilDate drops the clock so dates compare by calendar day in their own zone
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func compareTime(a, b time.Time) int {
	return a.Compare(b)
}

// unwrap turns nil pointers and invalid nullable decimals into nil and
// dereferences everything else.
func unwrap(value any) any {
	switch v := value.(type) {
	case decimal.NullDecimal:
		if !v.Valid {
			return nil
		}
		return v.Decimal
	case *string:
		if v == nil {
			return nil
		}
		return *v
	case *int64:
		if v == nil {
			return nil
		}
		return *v
	case *int16:
		if v == nil {
			return nil
		}
		return *v
	case *time.Time:
		if v == nil {
			return nil
		}
		return *v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		return *v
	}
	return value
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	}
	if i, ok := toInt(value); ok {
		return decimal.NewFromInt(i), true
	}
	return decimal.Decimal{}, false
}

func toInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	}
	return 0, false
}
