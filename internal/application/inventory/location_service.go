package inventory

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/query"
	"github.com/stockroom/backend/internal/domain/shared"
)

// LocationService handles shelves, bins and baskets
type LocationService struct {
	store   inventory.Store
	idents  *IdentifierService
	printer LabelPrinter
	metrics Metrics
	logger  *zap.Logger
}

// NewLocationService creates a new LocationService
func NewLocationService(store inventory.Store, idents *IdentifierService, printer LabelPrinter, logger *zap.Logger) *LocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationService{store: store, idents: idents, printer: printer, metrics: NopMetrics{}, logger: logger}
}

// SetMetrics sets the metrics recorder
func (s *LocationService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// List returns the locations matching the query filters
func (s *LocationService) List(ctx context.Context, params url.Values) ([]LocationResponse, error) {
	locs, err := s.store.Locations().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	locs = query.Derive(inventory.LocationFields, params).Apply(locs)
	return mapSlice(locs, toLocationResponse), nil
}

// Get returns one location by barcode
func (s *LocationService) Get(ctx context.Context, barcode string) (*LocationResponse, error) {
	loc, err := s.store.Locations().FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, missing(err, "barcode", inventory.MsgLocationNotFound)
	}
	resp := toLocationResponse(loc)
	return &resp, nil
}

// checkLocationName rejects a name held by a location other than barcode
func checkLocationName(ctx context.Context, repos inventory.Repositories, name, barcode string) error {
	other, err := repos.Locations().FindByName(ctx, name)
	if err == nil && other.Barcode != barcode {
		return shared.NewFieldError("name", inventory.MsgNameUsed)
	}
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// Create mints a location identifier and stores the location under it
func (s *LocationService) Create(ctx context.Context, p Payload) (*LocationResponse, error) {
	name, _ := p.Text("name")
	description, _ := p.Text("description")
	loc, err := inventory.NewLocation("", name, description)
	if err != nil {
		return nil, err
	}

	_, err = s.idents.mint(ctx, inventory.LocationClass, nil, func(repos inventory.Repositories, barcode string) error {
		if err := checkLocationName(ctx, repos, loc.Name, ""); err != nil {
			return err
		}
		loc.Barcode = barcode
		return repos.Locations().Create(ctx, loc)
	})
	if err != nil {
		return nil, conflictAs(err, "name", "name", inventory.MsgNameUsed)
	}

	s.metrics.RecordCreated(ctx, "location")
	s.logger.Info("Location created", zap.String("barcode", loc.Barcode), zap.String("name", loc.Name))
	resp := toLocationResponse(loc)
	return &resp, nil
}

// Update applies the fields present in p
func (s *LocationService) Update(ctx context.Context, barcode string, p Payload) (*LocationResponse, error) {
	var loc *inventory.Location
	err := s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		var err error
		loc, err = repos.Locations().FindByBarcode(ctx, barcode)
		if err != nil {
			return missing(err, "barcode", inventory.MsgLocationNotFound)
		}
		if name, ok := p.Text("name"); ok {
			if err := loc.Rename(name); err != nil {
				return err
			}
			if err := checkLocationName(ctx, repos, loc.Name, loc.Barcode); err != nil {
				return err
			}
		}
		if description, ok := p.Text("description"); ok {
			loc.Description = description
		}
		return repos.Locations().Save(ctx, loc)
	})
	if err != nil {
		return nil, conflictAs(err, "name", "name", inventory.MsgNameUsed)
	}

	resp := toLocationResponse(loc)
	return &resp, nil
}

// Patch prints a barcode label when p carries printed=true
func (s *LocationService) Patch(ctx context.Context, barcode string, p Payload) (*LocationResponse, error) {
	loc, err := s.store.Locations().FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, missing(err, "barcode", inventory.MsgLocationNotFound)
	}
	if printed, _ := p.Bool("printed"); printed {
		if err := s.printer.PrintLabel(ctx, Label{Kind: "Location", Name: loc.Name, Barcode: loc.Barcode}); err != nil {
			return nil, err
		}
	}
	resp := toLocationResponse(loc)
	return &resp, nil
}

// Shelves returns one page of locations ordered by barcode
func (s *LocationService) Shelves(ctx context.Context, page, pageSize int) (*shared.Page[LocationResponse], error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total, err := s.store.Locations().Count(ctx)
	if err != nil {
		return nil, err
	}
	number, numPages := shared.ClampPage(page, total, pageSize)
	locs, err := s.store.Locations().FindPage(ctx, (number-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	result := shared.NewPage(mapSlice(locs, toLocationResponse), total, number, numPages)
	return &result, nil
}
