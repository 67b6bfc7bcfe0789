package inventory

import (
	"fmt"
	"strconv"
	"time"

	"github.com/stockroom/backend/internal/domain/query"
	"github.com/stockroom/backend/internal/domain/shared"
)

// IdentType is the classification of a resolved barcode
type IdentType string

const (
	IdentLocation IdentType = "LOC"
	IdentItem     IdentType = "ITM"
	IdentOther    IdentType = "OTHER"
)

// IdentifierURLPrefix is the path under which identifier records are served
const IdentifierURLPrefix = "/inventory/identifier/"

// Class is a family of sequential barcodes sharing one fixed width.
// A barcode is BodyWidth digits followed by their Damm check digit.
type Class struct {
	Type      IdentType
	BodyWidth int
	Base      string // first body handed out in an empty class
}

var (
	// LocationClass mints 4-digit shelf and bin barcodes
	LocationClass = Class{Type: IdentLocation, BodyWidth: 3, Base: "100"}
	// ItemClass mints 7-digit item barcodes
	ItemClass = Class{Type: IdentItem, BodyWidth: 6, Base: "100000"}
)

// ErrClassExhausted is returned when every body of a class has been used
var ErrClassExhausted = shared.NewDomainError("CLASS_EXHAUSTED", "No barcodes left in identifier class")

// Width is the full barcode length including the check digit
func (c Class) Width() int {
	return c.BodyWidth + 1
}

// Contains reports whether barcode belongs to the class by shape alone
func (c Class) Contains(barcode string) bool {
	return len(barcode) == c.Width() && IsDigitString(barcode)
}

// Next derives the barcode following max, the greatest barcode already in the
// class ("" when the class is empty). The width comes from the class, never
// from max.
func (c Class) Next(max string) (string, error) {
	body := c.Base
	if max != "" {
		if !c.Contains(max) {
			return "", fmt.Errorf("barcode %q is not a %s identifier", max, c.Type)
		}
		n, err := strconv.Atoi(max[:c.BodyWidth])
		if err != nil {
			return "", fmt.Errorf("parse barcode body: %w", err)
		}
		body = fmt.Sprintf("%0*d", c.BodyWidth, n+1)
		if len(body) > c.BodyWidth {
			return "", ErrClassExhausted
		}
	}
	return body + strconv.Itoa(CheckDigit(body)), nil
}

// IsLocationID reports whether barcode has the shape of a location identifier
func IsLocationID(barcode string) bool {
	return LocationClass.Contains(barcode)
}

// IsItemID reports whether barcode has the shape of an item identifier
func IsItemID(barcode string) bool {
	return ItemClass.Contains(barcode)
}

// Classify types a resolved barcode by its width; "" classifies as OTHER
func Classify(barcode string) IdentType {
	switch len(barcode) {
	case LocationClass.Width():
		return IdentLocation
	case ItemClass.Width():
		return IdentItem
	}
	return IdentOther
}

// Identifier is a barcode owned by at most one Location or ItemTemplate,
// optionally tied to an external UPC/EAN code.
type Identifier struct {
	Barcode    string
	LinkedCode *string
	Created    time.Time
}

// URL is the canonical path of the identifier record
func (i Identifier) URL() string {
	return IdentifierURL(i.Barcode)
}

// IdentifierURL builds the canonical path of an identifier record
func IdentifierURL(barcode string) string {
	return IdentifierURLPrefix + barcode
}

// Resolution is the outcome of matching a scanned digit string
type Resolution struct {
	Digitstring string    `json:"digitstring"`
	Identifier  string    `json:"identifier"`
	Type        IdentType `json:"type"`
}

// IdentifierFields is the filter table of identifiers
var IdentifierFields = query.Table[Identifier]{
	{Name: "barcode", Kind: query.KindText, Get: func(i *Identifier) any { return i.Barcode }},
	{Name: "linked_code", Kind: query.KindText, Get: func(i *Identifier) any { return i.LinkedCode }},
	{Name: "created", Kind: query.KindDate, Get: func(i *Identifier) any { return i.Created }},
}
