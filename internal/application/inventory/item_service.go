package inventory

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/query"
	"github.com/stockroom/backend/internal/domain/shared"
)

// ItemService handles item templates
type ItemService struct {
	store   inventory.Store
	idents  *IdentifierService
	printer LabelPrinter
	metrics Metrics
	logger  *zap.Logger
}

// NewItemService creates a new ItemService
func NewItemService(store inventory.Store, idents *IdentifierService, printer LabelPrinter, logger *zap.Logger) *ItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemService{store: store, idents: idents, printer: printer, metrics: NopMetrics{}, logger: logger}
}

// SetMetrics sets the metrics recorder
func (s *ItemService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

func checkItemDescription(ctx context.Context, repos inventory.Repositories, description, barcode string) error {
	other, err := repos.Items().FindByDescription(ctx, description)
	if err == nil && other.Barcode != barcode {
		return shared.NewFieldError("description", inventory.MsgDescriptionUsed)
	}
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// applyItemFields copies the optional attributes present in p; unknown keys are ignored
func applyItemFields(it *inventory.ItemTemplate, p Payload) {
	if v, ok := p.Text("brand"); ok {
		it.Brand = v
	}
	if v, ok := p.Text("content"); ok {
		it.Content = v
	}
	if v, ok := p.Text("part_unit"); ok {
		it.PartUnit = v
	}
	if v, ok := p.Bool("yardage"); ok {
		it.Yardage = v
	}
	if v, ok := p.Bool("out_of_stock"); ok {
		it.OutOfStock = v
	}
}

// List returns the items matching the query filters
func (s *ItemService) List(ctx context.Context, params url.Values) ([]ItemResponse, error) {
	items, err := s.store.Items().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	items = query.Derive(inventory.ItemFields, params).Apply(items)
	return mapSlice(items, toItemResponse), nil
}

// Get returns one item by barcode
func (s *ItemService) Get(ctx context.Context, barcode string) (*ItemResponse, error) {
	it, err := s.store.Items().FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, missing(err, "barcode", inventory.MsgItemNotFound)
	}
	resp := toItemResponse(it)
	return &resp, nil
}

// Create mints an item identifier carrying the optional linked code and
// stores the item under it
func (s *ItemService) Create(ctx context.Context, p Payload) (*ItemResponse, error) {
	description, _ := p.Text("description")
	it, err := inventory.NewItemTemplate("", description)
	if err != nil {
		return nil, err
	}
	applyItemFields(it, p)
	it.LinkedCode, _ = p.OptionalText("linked_code")

	_, err = s.idents.mint(ctx, inventory.ItemClass, it.LinkedCode, func(repos inventory.Repositories, barcode string) error {
		if err := checkItemDescription(ctx, repos, it.Description, ""); err != nil {
			return err
		}
		it.Barcode = barcode
		return repos.Items().Create(ctx, it)
	})
	if err != nil {
		return nil, conflictAs(err, "description", "description", inventory.MsgDescriptionUsed)
	}

	s.metrics.RecordCreated(ctx, "item")
	s.logger.Info("Item created", zap.String("barcode", it.Barcode), zap.String("description", it.Description))
	resp := toItemResponse(it)
	return &resp, nil
}

// Update applies the fields present in p. A linked code is stored on the
// item's identifier.
func (s *ItemService) Update(ctx context.Context, barcode string, p Payload) (*ItemResponse, error) {
	var it *inventory.ItemTemplate
	err := s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		var err error
		it, err = repos.Items().FindByBarcode(ctx, barcode)
		if err != nil {
			return missing(err, "barcode", inventory.MsgItemNotFound)
		}
		if description, ok := p.Text("description"); ok {
			if err := it.Describe(description); err != nil {
				return err
			}
			if err := checkItemDescription(ctx, repos, it.Description, it.Barcode); err != nil {
				return err
			}
		}
		applyItemFields(it, p)
		if code, ok := p.OptionalText("linked_code"); ok {
			if err := repos.Identifiers().SetLinkedCode(ctx, it.Barcode, code); err != nil {
				return err
			}
			it.LinkedCode = code
		}
		return repos.Items().Save(ctx, it)
	})
	if err != nil {
		return nil, conflictAs(err, "description", "description", inventory.MsgDescriptionUsed)
	}

	resp := toItemResponse(it)
	return &resp, nil
}

// Patch prints a barcode label when p carries printed=true
func (s *ItemService) Patch(ctx context.Context, barcode string, p Payload) (*ItemResponse, error) {
	it, err := s.store.Items().FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, missing(err, "barcode", inventory.MsgItemNotFound)
	}
	if printed, _ := p.Bool("printed"); printed {
		if err := s.printer.PrintLabel(ctx, Label{Kind: "Item", Name: it.Description, Barcode: it.Barcode}); err != nil {
			return nil, err
		}
	}
	resp := toItemResponse(it)
	return &resp, nil
}
