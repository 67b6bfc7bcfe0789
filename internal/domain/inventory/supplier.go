package inventory

import (
	"strings"

	"github.com/stockroom/backend/internal/domain/query"
	"github.com/stockroom/backend/internal/domain/shared"
)

// Supplier is a vendor invoices are received from
type Supplier struct {
	ID    int64
	Name  string
	City  string
	State string
	Zip5  string
}

// NewSupplier validates the required name
func NewSupplier(name, city, state, zip5 string) (*Supplier, error) {
	s := &Supplier{City: city, State: state, Zip5: zip5}
	if err := s.Rename(name); err != nil {
		return nil, err
	}
	return s, nil
}

// Rename changes the supplier name; a blank name is rejected
func (s *Supplier) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewFieldError("name", MsgNameRequired)
	}
	s.Name = name
	return nil
}

// SupplierFields is the filter table of suppliers
var SupplierFields = query.Table[Supplier]{
	{Name: "id", Kind: query.KindInteger, Get: func(s *Supplier) any { return s.ID }},
	{Name: "name", Kind: query.KindText, Get: func(s *Supplier) any { return s.Name }},
	{Name: "city", Kind: query.KindText, Get: func(s *Supplier) any { return s.City }},
	{Name: "state", Kind: query.KindText, Get: func(s *Supplier) any { return s.State }},
	{Name: "zip5", Kind: query.KindText, Get: func(s *Supplier) any { return s.Zip5 }},
}
