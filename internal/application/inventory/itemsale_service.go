package inventory

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/query"
	"github.com/stockroom/backend/internal/domain/shared"
)

// ItemSaleService handles receipt lines
type ItemSaleService struct {
	store   inventory.Store
	metrics Metrics
	logger  *zap.Logger
}

// NewItemSaleService creates a new ItemSaleService
func NewItemSaleService(store inventory.Store, logger *zap.Logger) *ItemSaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemSaleService{store: store, metrics: NopMetrics{}, logger: logger}
}

// SetMetrics sets the metrics recorder
func (s *ItemSaleService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// resolveSaleRefs validates the receipt_id and item_id of p. With required
// set, absent references are errors; otherwise only present ones are checked.
// Every failure is reported together.
func resolveSaleRefs(ctx context.Context, repos inventory.Repositories, sale *inventory.ItemSale, p Payload, required bool) error {
	fe := shared.FieldErrors{}

	rawReceipt, _ := p.Text("receipt_id")
	switch {
	case rawReceipt == "" && required:
		fe.Add("receipt_id", inventory.MsgReceiptRequired)
	case rawReceipt == "":
	default:
		id, ok := parseID(rawReceipt)
		if ok {
			if _, err := repos.Receipts().FindByID(ctx, id); err != nil {
				if !isNotFound(err) {
					return err
				}
				ok = false
			}
		}
		if ok {
			sale.ReceiptID = id
		} else {
			fe.Add("receipt_id", inventory.MsgReceiptNotFound(rawReceipt))
		}
	}

	itemID, _ := p.Text("item_id")
	switch {
	case itemID == "" && required:
		fe.Add("item_id", inventory.MsgItemRequired)
	case itemID == "":
	default:
		if _, err := repos.Items().FindByBarcode(ctx, itemID); err != nil {
			if !isNotFound(err) {
				return err
			}
			fe.Add("item_id", inventory.MsgItemBarcodeNotFound(itemID))
		} else {
			sale.ItemID = itemID
		}
	}

	return fe.Err()
}

func applySaleFields(sale *inventory.ItemSale, p Payload) {
	if n, ok := p.Int("count"); ok {
		sale.Count = n
	}
	if amount, ok := p.Decimal("amount"); ok {
		sale.Amount = amount
	}
	if raw, ok := p.Text("adjusted"); ok {
		if raw == "" {
			sale.Adjusted = decimal.NullDecimal{}
		} else if adjusted, parsed := p.Decimal("adjusted"); parsed {
			sale.Adjusted = decimal.NewNullDecimal(adjusted)
		}
	}
}

func findItemSale(ctx context.Context, repos inventory.Repositories, rawID string) (*inventory.ItemSale, error) {
	notFound := shared.NewFieldError("id", inventory.MsgItemSaleNotFound(rawID))
	id, ok := parseID(rawID)
	if !ok {
		return nil, notFound
	}
	sale, err := repos.ItemSales().FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound
		}
		return nil, err
	}
	return sale, nil
}

// List returns the item sales matching the query filters
func (s *ItemSaleService) List(ctx context.Context, params url.Values) ([]ItemSaleResponse, error) {
	sales, err := s.store.ItemSales().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sales = query.Derive(inventory.ItemSaleFields, params).Apply(sales)
	return mapSlice(sales, toItemSaleResponse), nil
}

// Get returns one item sale
func (s *ItemSaleService) Get(ctx context.Context, rawID string) (*ItemSaleResponse, error) {
	sale, err := findItemSale(ctx, s.store, rawID)
	if err != nil {
		return nil, err
	}
	resp := toItemSaleResponse(sale)
	return &resp, nil
}

// Create records an item sold on a receipt
func (s *ItemSaleService) Create(ctx context.Context, p Payload) (*ItemSaleResponse, error) {
	sale := &inventory.ItemSale{}
	err := s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		if err := resolveSaleRefs(ctx, repos, sale, p, true); err != nil {
			return err
		}
		applySaleFields(sale, p)
		return repos.ItemSales().Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCreated(ctx, "itemsale")
	resp := toItemSaleResponse(sale)
	return &resp, nil
}

// Update applies the fields present in p; changed references are validated
func (s *ItemSaleService) Update(ctx context.Context, rawID string, p Payload) (*ItemSaleResponse, error) {
	var sale *inventory.ItemSale
	err := s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		var err error
		sale, err = findItemSale(ctx, repos, rawID)
		if err != nil {
			return err
		}
		if err := resolveSaleRefs(ctx, repos, sale, p, false); err != nil {
			return err
		}
		applySaleFields(sale, p)
		return repos.ItemSales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	resp := toItemSaleResponse(sale)
	return &resp, nil
}
