package inventory

import (
	"context"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/query"
	"github.com/stockroom/backend/internal/domain/shared"
)

// SupplierService handles vendors
type SupplierService struct {
	store    inventory.Store
	validate *validator.Validate
	metrics  Metrics
	logger   *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(store inventory.Store, logger *zap.Logger) *SupplierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierService{store: store, validate: validator.New(), metrics: NopMetrics{}, logger: logger}
}

// SetMetrics sets the metrics recorder
func (s *SupplierService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

func (s *SupplierService) checkZip(zip5 string) error {
	if err := s.validate.Var(zip5, "omitempty,numeric,len=5"); err != nil {
		return shared.NewFieldError("zip5", inventory.MsgZip5)
	}
	return nil
}

func checkSupplierName(ctx context.Context, repos inventory.Repositories, name string, id int64) error {
	other, err := repos.Suppliers().FindByName(ctx, name)
	if err == nil && other.ID != id {
		return shared.NewFieldError("name", inventory.MsgNameUsed)
	}
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil
}

// List returns the suppliers matching the query filters
func (s *SupplierService) List(ctx context.Context, params url.Values) ([]SupplierResponse, error) {
	suppliers, err := s.store.Suppliers().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	suppliers = query.Derive(inventory.SupplierFields, params).Apply(suppliers)
	return mapSlice(suppliers, toSupplierResponse), nil
}

// Get returns one supplier
func (s *SupplierService) Get(ctx context.Context, rawID string) (*SupplierResponse, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, shared.NewFieldError("id", inventory.MsgSupplierNotFound)
	}
	sup, err := s.store.Suppliers().FindByID(ctx, id)
	if err != nil {
		return nil, missing(err, "id", inventory.MsgSupplierNotFound)
	}
	resp := toSupplierResponse(sup)
	return &resp, nil
}

// Create stores a new supplier
func (s *SupplierService) Create(ctx context.Context, p Payload) (*SupplierResponse, error) {
	name, _ := p.Text("name")
	city, _ := p.Text("city")
	state, _ := p.Text("state")
	zip5, _ := p.Text("zip5")

	sup, err := inventory.NewSupplier(name, city, state, zip5)
	if err != nil {
		return nil, err
	}
	if err := s.checkZip(zip5); err != nil {
		return nil, err
	}

	err = s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		if err := checkSupplierName(ctx, repos, sup.Name, 0); err != nil {
			return err
		}
		return repos.Suppliers().Create(ctx, sup)
	})
	if err != nil {
		return nil, conflictAs(err, "name", "name", inventory.MsgNameUsed)
	}

	s.metrics.RecordCreated(ctx, "supplier")
	s.logger.Info("Supplier created", zap.Int64("id", sup.ID), zap.String("name", sup.Name))
	resp := toSupplierResponse(sup)
	return &resp, nil
}

// Update applies the fields present in p
func (s *SupplierService) Update(ctx context.Context, rawID string, p Payload) (*SupplierResponse, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, shared.NewFieldError("id", inventory.MsgSupplierNotFound)
	}

	var sup *inventory.Supplier
	err := s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		var err error
		sup, err = repos.Suppliers().FindByID(ctx, id)
		if err != nil {
			return missing(err, "id", inventory.MsgSupplierNotFound)
		}
		if name, ok := p.Text("name"); ok {
			if err := sup.Rename(name); err != nil {
				return err
			}
			if err := checkSupplierName(ctx, repos, sup.Name, sup.ID); err != nil {
				return err
			}
		}
		if city, ok := p.Text("city"); ok {
			sup.City = city
		}
		if state, ok := p.Text("state"); ok {
			sup.State = state
		}
		if zip5, ok := p.Text("zip5"); ok {
			if err := s.checkZip(zip5); err != nil {
				return err
			}
			sup.Zip5 = zip5
		}
		return repos.Suppliers().Save(ctx, sup)
	})
	if err != nil {
		return nil, conflictAs(err, "name", "name", inventory.MsgNameUsed)
	}

	resp := toSupplierResponse(sup)
	return &resp, nil
}

// Page returns one page of suppliers ordered by id
func (s *SupplierService) Page(ctx context.Context, page, pageSize int) (*shared.Page[SupplierResponse], error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total, err := s.store.Suppliers().Count(ctx)
	if err != nil {
		return nil, err
	}
	number, numPages := shared.ClampPage(page, total, pageSize)
	suppliers, err := s.store.Suppliers().FindPage(ctx, (number-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	result := shared.NewPage(mapSlice(suppliers, toSupplierResponse), total, number, numPages)
	return &result, nil
}
