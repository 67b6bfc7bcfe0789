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

// StockService handles on-hand quantities
type StockService struct {
	store   inventory.Store
	metrics Metrics
	logger  *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(store inventory.Store, logger *zap.Logger) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{store: store, metrics: NopMetrics{}, logger: logger}
}

// SetMetrics sets the metrics recorder
func (s *StockService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// applyStockFields copies loc_id, units and eighths from p onto sb.
// Unreadable numbers are ignored; present-but-empty values clear the field.
func applyStockFields(ctx context.Context, repos inventory.Repositories, sb *inventory.StockBook, yardage bool, p Payload) error {
	if loc, ok := p.OptionalText("loc_id"); ok {
		if loc != nil {
			if _, err := repos.Locations().FindByBarcode(ctx, *loc); err != nil {
				return missing(err, "loc_id", inventory.MsgLocationNotFound)
			}
		}
		sb.LocationID = loc
	}
	if raw, ok := p.Text("units"); ok {
		if raw == "" {
			sb.Units = decimal.NullDecimal{}
		} else if units, parsed := p.Decimal("units"); parsed {
			sb.Units = decimal.NewNullDecimal(units)
		}
	}
	if raw, ok := p.Text("eighths"); ok {
		if raw == "" {
			sb.SetEighths(yardage, nil)
		} else if n, parsed := p.Int("eighths"); parsed {
			if e, ok := inventory.EighthsFrom(n); ok {
				sb.SetEighths(yardage, &e)
			}
		}
	}
	if !yardage {
		sb.SetEighths(false, nil)
	}
	return nil
}

// List returns the stock records matching the query filters
func (s *StockService) List(ctx context.Context, params url.Values) ([]StockBookResponse, error) {
	books, err := s.store.StockBooks().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	books = query.Derive(inventory.StockBookFields, params).Apply(books)
	return mapSlice(books, toStockBookResponse), nil
}

// Get returns the stock record of an item
func (s *StockService) Get(ctx context.Context, itemID string) (*StockBookResponse, error) {
	if _, err := s.store.Items().FindByBarcode(ctx, itemID); err != nil {
		return nil, missing(err, "itm_id", inventory.MsgItemNotFound)
	}
	sb, err := s.store.StockBooks().FindByItem(ctx, itemID)
	if err != nil {
		return nil, missing(err, "item", inventory.MsgRecordNotFound)
	}
	resp := toStockBookResponse(sb)
	return &resp, nil
}

// Create starts the stock record of an item that has none
func (s *StockService) Create(ctx context.Context, p Payload) (*StockBookResponse, error) {
	itemID, _ := p.Text("itm_id")
	if itemID == "" {
		return nil, shared.NewFieldError("itm_id", inventory.MsgNoItemIDReceived)
	}

	var sb *inventory.StockBook
	err := s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		item, err := repos.Items().FindByBarcode(ctx, itemID)
		if err != nil {
			return missing(err, "itm_id", inventory.MsgItemNotFound)
		}
		if _, err := repos.StockBooks().FindByItem(ctx, itemID); err == nil {
			return shared.NewFieldError("itm_id", inventory.MsgRecordExists)
		} else if !isNotFound(err) {
			return err
		}

		now := time.Now()
		sb = &inventory.StockBook{ItemID: itemID, Created: now, Updated: now}
		if err := applyStockFields(ctx, repos, sb, item.Yardage, p); err != nil {
			return err
		}
		return repos.StockBooks().Create(ctx, sb)
	})
	if err != nil {
		return nil, conflictAs(err, "itm_id", "itm_id", inventory.MsgRecordExists)
	}

	s.metrics.RecordCreated(ctx, "stockbook")
	resp := toStockBookResponse(sb)
	return &resp, nil
}

// Update writes the stock record of an item, creating it on first use
func (s *StockService) Update(ctx context.Context, itemID string, p Payload) (*StockBookResponse, error) {
	var sb *inventory.StockBook
	err := retryOnConflict(s.logger, "stock update", func() error {
		return s.store.Atomic(ctx, func(repos inventory.Repositories) error {
			item, err := repos.Items().FindByBarcode(ctx, itemID)
			if err != nil {
				return missing(err, "itm_id", inventory.MsgItemNotFound)
			}
			var created bool
			sb, created, err = stockBookFor(ctx, repos, itemID)
			if err != nil {
				return err
			}
			if err := applyStockFields(ctx, repos, sb, item.Yardage, p); err != nil {
				return err
			}
			sb.Updated = time.Now()
			if created {
				return repos.StockBooks().Create(ctx, sb)
			}
			return repos.StockBooks().Save(ctx, sb)
		})
	})
	if err != nil {
		return nil, conflictAs(err, "itm_id", "itm_id", inventory.MsgRecordExists)
	}

	resp := toStockBookResponse(sb)
	return &resp, nil
}

// stockBookFor loads the stock record of an item or prepares a new one
func stockBookFor(ctx context.Context, repos inventory.Repositories, itemID string) (*inventory.StockBook, bool, error) {
	sb, err := repos.StockBooks().FindByItem(ctx, itemID)
	if err == nil {
		return sb, false, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}
	now := time.Now()
	return &inventory.StockBook{ItemID: itemID, Created: now, Updated: now}, true, nil
}
