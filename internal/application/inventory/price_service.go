package inventory

import (
	"context"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/query"
	"github.com/stockroom/backend/internal/domain/shared"
)

// PriceService handles selling prices
type PriceService struct {
	store   inventory.Store
	metrics Metrics
	logger  *zap.Logger
}

// NewPriceService creates a new PriceService
func NewPriceService(store inventory.Store, logger *zap.Logger) *PriceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceService{store: store, metrics: NopMetrics{}, logger: logger}
}

// SetMetrics sets the metrics recorder
func (s *PriceService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

func applyPrice(pr *inventory.Price, p Payload) {
	raw, ok := p.Text("price")
	if !ok {
		return
	}
	if raw == "" {
		pr.Price = decimal.NullDecimal{}
		return
	}
	if amount, parsed := p.Decimal("price"); parsed {
		pr.Price = decimal.NewNullDecimal(amount)
	}
}

// List returns the prices matching the query filters
func (s *PriceService) List(ctx context.Context, params url.Values) ([]PriceResponse, error) {
	prices, err := s.store.Prices().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	prices = query.Derive(inventory.PriceFields, params).Apply(prices)
	return mapSlice(prices, toPriceResponse), nil
}

// Get returns the price of an item
func (s *PriceService) Get(ctx context.Context, itemID string) (*PriceResponse, error) {
	if _, err := s.store.Items().FindByBarcode(ctx, itemID); err != nil {
		return nil, missing(err, "itm_id", inventory.MsgItemNotFound)
	}
	pr, err := s.store.Prices().FindByItem(ctx, itemID)
	if err != nil {
		return nil, missing(err, "item", inventory.MsgRecordNotFound)
	}
	resp := toPriceResponse(pr)
	return &resp, nil
}

// Create starts the price record of an item that has none
func (s *PriceService) Create(ctx context.Context, p Payload) (*PriceResponse, error) {
	itemID, _ := p.Text("itm_id")
	if itemID == "" {
		return nil, shared.NewFieldError("itm_id", inventory.MsgNoItemIDReceived)
	}

	var pr *inventory.Price
	err := s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		if _, err := repos.Items().FindByBarcode(ctx, itemID); err != nil {
			return missing(err, "itm_id", inventory.MsgItemNotFound)
		}
		if _, err := repos.Prices().FindByItem(ctx, itemID); err == nil {
			return shared.NewFieldError("itm_id", inventory.MsgRecordExists)
		} else if !isNotFound(err) {
			return err
		}
		now := time.Now()
		pr = &inventory.Price{ItemID: itemID, Created: now, Updated: now}
		applyPrice(pr, p)
		return repos.Prices().Create(ctx, pr)
	})
	if err != nil {
		return nil, conflictAs(err, "itm_id", "itm_id", inventory.MsgRecordExists)
	}

	s.metrics.RecordCreated(ctx, "price")
	resp := toPriceResponse(pr)
	return &resp, nil
}

// Update writes the price of an item, creating the record on first use
func (s *PriceService) Update(ctx context.Context, itemID string, p Payload) (*PriceResponse, error) {
	var pr *inventory.Price
	err := retryOnConflict(s.logger, "price update", func() error {
		return s.store.Atomic(ctx, func(repos inventory.Repositories) error {
			if _, err := repos.Items().FindByBarcode(ctx, itemID); err != nil {
				return missing(err, "itm_id", inventory.MsgItemNotFound)
			}
			var created bool
			var err error
			pr, created, err = priceFor(ctx, repos, itemID)
			if err != nil {
				return err
			}
			applyPrice(pr, p)
			pr.Updated = time.Now()
			if created {
				return repos.Prices().Create(ctx, pr)
			}
			return repos.Prices().Save(ctx, pr)
		})
	})
	if err != nil {
		return nil, conflictAs(err, "itm_id", "itm_id", inventory.MsgRecordExists)
	}

	resp := toPriceResponse(pr)
	return &resp, nil
}

// priceFor loads the price record of an item or prepares a new one
func priceFor(ctx context.Context, repos inventory.Repositories, itemID string) (*inventory.Price, bool, error) {
	pr, err := repos.Prices().FindByItem(ctx, itemID)
	if err == nil {
		return pr, false, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}
	now := time.Now()
	return &inventory.Price{ItemID: itemID, Created: now, Updated: now}, true, nil
}
