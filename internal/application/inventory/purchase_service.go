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

// PurchaseService handles invoice lines
type PurchaseService struct {
	store   inventory.Store
	metrics Metrics
	logger  *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(store inventory.Store, logger *zap.Logger) *PurchaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{store: store, metrics: NopMetrics{}, logger: logger}
}

// SetMetrics sets the metrics recorder
func (s *PurchaseService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// accumulatePurchase adds cost to the (invoice, item) line, creating the line
// when the pair has not been posted yet
func accumulatePurchase(ctx context.Context, repos inventory.Repositories, invoiceID int64, itemID string, cost decimal.Decimal) (*inventory.Purchase, bool, error) {
	p, err := repos.Purchases().FindByInvoiceAndItem(ctx, invoiceID, itemID)
	if err == nil {
		p.AddCost(cost)
		return p, false, repos.Purchases().Save(ctx, p)
	}
	if !isNotFound(err) {
		return nil, false, err
	}
	p = &inventory.Purchase{InvoiceID: invoiceID, ItemID: itemID, Cost: cost}
	return p, true, repos.Purchases().Create(ctx, p)
}

// List returns the purchases matching the query filters
func (s *PurchaseService) List(ctx context.Context, params url.Values) ([]PurchaseResponse, error) {
	purchases, err := s.store.Purchases().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	purchases = query.Derive(inventory.PurchaseFields, params).Apply(purchases)
	return mapSlice(purchases, toPurchaseResponse), nil
}

// Get returns one purchase line
func (s *PurchaseService) Get(ctx context.Context, rawID string) (*PurchaseResponse, error) {
	p, err := s.find(ctx, s.store, rawID)
	if err != nil {
		return nil, err
	}
	resp := toPurchaseResponse(p)
	return &resp, nil
}

func (s *PurchaseService) find(ctx context.Context, repos inventory.Repositories, rawID string) (*inventory.Purchase, error) {
	notFound := shared.NewFieldError("id", inventory.MsgPurchaseNotFound(rawID))
	id, ok := parseID(rawID)
	if !ok {
		return nil, notFound
	}
	p, err := repos.Purchases().FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound
		}
		return nil, err
	}
	return p, nil
}

// Create posts cost against an invoice line. Posting an (invoice, item) pair
// again adds to its cost.
func (s *PurchaseService) Create(ctx context.Context, p Payload) (*PurchaseResponse, error) {
	rawInvoice, _ := p.Text("invoice_id")
	itemID, _ := p.Text("item_id")
	cost, _ := p.Decimal("cost")

	var line *inventory.Purchase
	var created bool
	post := func() error {
		return s.store.Atomic(ctx, func(repos inventory.Repositories) error {
			fe := shared.FieldErrors{}
			var invoiceID int64
			if rawInvoice == "" {
				fe.Add("invoice_id", inventory.MsgInvoiceRequired)
			} else if id, ok := parseID(rawInvoice); !ok {
				fe.Add("invoice_id", inventory.MsgInvoiceNumberNotFound(rawInvoice))
			} else if _, err := repos.Invoices().FindByID(ctx, id); err != nil {
				if !isNotFound(err) {
					return err
				}
				fe.Add("invoice_id", inventory.MsgInvoiceNumberNotFound(rawInvoice))
			} else {
				invoiceID = id
			}
			if itemID == "" {
				fe.Add("item_id", inventory.MsgItemRequired)
			} else if _, err := repos.Items().FindByBarcode(ctx, itemID); err != nil {
				if !isNotFound(err) {
					return err
				}
				fe.Add("item_id", inventory.MsgItemBarcodeNotFound(itemID))
			}
			if err := fe.Err(); err != nil {
				return err
			}

			var err error
			line, created, err = accumulatePurchase(ctx, repos, invoiceID, itemID, cost)
			return err
		})
	}

	if err := retryOnConflict(s.logger, "purchase create", post); err != nil {
		return nil, conflictAs(err, "item_id", "item_id", inventory.MsgRecordExists)
	}

	if created {
		s.metrics.RecordCreated(ctx, "purchase")
	}
	resp := toPurchaseResponse(line)
	return &resp, nil
}

// Update replaces the cost of a line. The invoice and item never change.
func (s *PurchaseService) Update(ctx context.Context, rawID string, p Payload) (*PurchaseResponse, error) {
	var line *inventory.Purchase
	err := s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		var err error
		line, err = s.find(ctx, repos, rawID)
		if err != nil {
			return err
		}
		cost, parsed := p.Decimal("cost")
		if !parsed {
			return nil
		}
		line.Cost = cost
		return repos.Purchases().Save(ctx, line)
	})
	if err != nil {
		return nil, err
	}

	resp := toPurchaseResponse(line)
	return &resp, nil
}
