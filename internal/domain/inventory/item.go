package inventory

import (
	"strings"

	"github.com/stockroom/backend/internal/domain/query"
	"github.com/stockroom/backend/internal/domain/shared"
)

// ItemTemplate is a catalog entry labelled with an item identifier.
// LinkedCode lives on the identifier and is carried here for convenience.
type ItemTemplate struct {
	Barcode     string
	Description string
	Brand       string
	Content     string
	PartUnit    string
	Yardage     bool // sold by length; stock may be tracked in eighths
	OutOfStock  bool
	LinkedCode  *string
}

// NewItemTemplate validates the required description. Items default to yardage goods.
func NewItemTemplate(barcode, description string) (*ItemTemplate, error) {
	it := &ItemTemplate{Barcode: barcode, Yardage: true}
	if err := it.Describe(description); err != nil {
		return nil, err
	}
	return it, nil
}

// Describe changes the description; a blank description is rejected
func (it *ItemTemplate) Describe(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.NewFieldError("description", MsgDescriptionRequired)
	}
	it.Description = description
	return nil
}

// ItemFields is the filter table of item templates
var ItemFields = query.Table[ItemTemplate]{
	{Name: "description", Kind: query.KindText, Get: func(it *ItemTemplate) any { return it.Description }},
	{Name: "brand", Kind: query.KindText, Get: func(it *ItemTemplate) any { return it.Brand }},
	{Name: "content", Kind: query.KindText, Get: func(it *ItemTemplate) any { return it.Content }},
	{Name: "part_unit", Kind: query.KindText, Get: func(it *ItemTemplate) any { return it.PartUnit }},
	{Name: "barcode", Kind: query.KindText, Get: func(it *ItemTemplate) any { return it.Barcode }},
	{Name: "linked_code", Kind: query.KindText, Get: func(it *ItemTemplate) any { return it.LinkedCode }},
	{Name: "itmID", Kind: query.KindText, Virtual: true, Get: func(it *ItemTemplate) any { return IdentifierURL(it.Barcode) }},
}
