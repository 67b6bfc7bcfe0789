package inventory

import (
	"strings"

	"github.com/stockroom/backend/internal/domain/query"
	"github.com/stockroom/backend/internal/domain/shared"
)

// Location is a shelf, bin or basket labelled with a location identifier
type Location struct {
	Barcode     string
	Name        string
	Description string
}

// NewLocation validates the required name
func NewLocation(barcode, name, description string) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewFieldError("name", MsgNameRequired)
	}
	return &Location{Barcode: barcode, Name: name, Description: description}, nil
}

// Rename changes the display name; a blank name is rejected
func (l *Location) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewFieldError("name", MsgNameRequired)
	}
	l.Name = name
	return nil
}

// LocationFields is the filter table of locations
var LocationFields = query.Table[Location]{
	{Name: "name", Kind: query.KindText, Get: func(l *Location) any { return l.Name }},
	{Name: "description", Kind: query.KindText, Get: func(l *Location) any { return l.Description }},
	{Name: "barcode", Kind: query.KindText, Get: func(l *Location) any { return l.Barcode }},
	{Name: "locID", Kind: query.KindText, Virtual: true, Get: func(l *Location) any { return IdentifierURL(l.Barcode) }},
}
