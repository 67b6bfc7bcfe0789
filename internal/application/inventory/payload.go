package inventory

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Payload is a decoded write request. Keys that are present but null or empty
// clear the matching field; absent keys leave it untouched. Numbers decoded
// from JSON arrive as json.Number.
type Payload map[string]any

// Has reports whether key was sent, whatever its value
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Text returns the value of key rendered as a trimmed string.
// ok is false when the key is absent; null renders as "".
func (p Payload) Text(key string) (s string, ok bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(t), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", true
}

// OptionalText is Text with "" mapped to nil
func (p Payload) OptionalText(key string) (*string, bool) {
	s, ok := p.Text(key)
	if !ok || s == "" {
		return nil, ok
	}
	return &s, true
}

// Decimal parses key as a decimal. parsed is false when the value is
// blank or unreadable, which callers treat as "not sent".
func (p Payload) Decimal(key string) (d decimal.Decimal, parsed bool) {
	s, ok := p.Text(key)
	if !ok || s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Int parses key as an integer with the same policy as Decimal
func (p Payload) Int(key string) (n int64, parsed bool) {
	s, ok := p.Text(key)
	if !ok || s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bool reads key as a flag. Form posts send "true"/"on"/"1".
func (p Payload) Bool(key string) (b bool, parsed bool) {
	v, ok := p[key]
	if !ok {
		return false, false
	}
	if t, isBool := v.(bool); isBool {
		return t, true
	}
	s, _ := p.Text(key)
	switch strings.ToLower(s) {
	case "true", "on", "1", "yes":
		return true, true
	case "false", "off", "0", "no", "":
		return false, true
	}
	return false, false
}

// Date parses key as an ISO date (YYYY-MM-DD)
func (p Payload) Date(key string) (t time.Time, parsed bool) {
	s, ok := p.Text(key)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
