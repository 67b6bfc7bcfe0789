package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// ItemDataService serves the combined item view used at the counter and
// accepts stock, cost and price postings for one item at a time.
type ItemDataService struct {
	store  inventory.Store
	idents *IdentifierService
	logger *zap.Logger
}

// NewItemDataService creates a new ItemDataService
func NewItemDataService(store inventory.Store, idents *IdentifierService, logger *zap.Logger) *ItemDataService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemDataService{store: store, idents: idents, logger: logger}
}

// Get resolves a scanned code and, when it names an item, returns the item
// together with its stock, price and latest purchase.
func (s *ItemDataService) Get(ctx context.Context, digitstring string) (*ItemDataResponse, error) {
	res, err := s.idents.ClassifyAndResolve(ctx, digitstring)
	if err != nil {
		return nil, err
	}
	resp := &ItemDataResponse{Digitstring: digitstring}
	if res.Type != inventory.IdentItem {
		return resp, nil
	}

	item, err := s.store.Items().FindByBarcode(ctx, res.Identifier)
	if isNotFound(err) {
		return resp, nil
	}
	if err != nil {
		return nil, err
	}

	detail := &ItemDataDetail{ItemResponse: toItemResponse(item)}
	if sb, err := s.store.StockBooks().FindByItem(ctx, item.Barcode); err == nil {
		detail.Loc = sb.LocationID
		detail.Units = nullMoney(sb.Units)
		detail.Eighths = sb.Eighths
	} else if !isNotFound(err) {
		return nil, err
	}
	if pr, err := s.store.Prices().FindByItem(ctx, item.Barcode); err == nil {
		detail.Price = nullMoney(pr.Price)
	} else if !isNotFound(err) {
		return nil, err
	}
	if pu, err := s.store.Purchases().FindLatestForItem(ctx, item.Barcode); err == nil {
		cost := money(pu.Cost)
		detail.Cost = &cost
		detail.Invoice = &pu.InvoiceID
	} else if !isNotFound(err) {
		return nil, err
	}

	resp.ItemDataDetail = detail
	return resp, nil
}

// itemDataPost is a validated item data posting
type itemDataPost struct {
	item      *inventory.ItemTemplate
	stock     bool
	loc       *string
	locSent   bool
	units     decimal.Decimal
	unitsSent bool
	eighths   *int16
	eighSent  bool
	invoiceID int64
	cost      decimal.Decimal
	costSent  bool
	price     decimal.Decimal
	priceSent bool
}

// validate checks every reference before anything is written
func (s *ItemDataService) validate(ctx context.Context, repos inventory.Repositories, p Payload) (*itemDataPost, error) {
	post := &itemDataPost{}
	fe := shared.FieldErrors{}

	barcode, _ := p.Text("item")
	if barcode == "" {
		fe.Add("item", inventory.MsgNoItemID)
	} else if item, err := repos.Items().FindByBarcode(ctx, barcode); err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		fe.Add("item", inventory.MsgItemNotFound)
	} else {
		post.item = item
	}

	post.units, post.unitsSent = p.Decimal("units")
	if n, ok := p.Int("eighths"); ok {
		if e, ok := inventory.EighthsFrom(n); ok {
			post.eighths, post.eighSent = &e, true
		}
	}
	if loc, ok := p.OptionalText("loc"); ok && loc != nil {
		if _, err := repos.Locations().FindByBarcode(ctx, *loc); err != nil {
			if !isNotFound(err) {
				return nil, err
			}
			fe.Add("loc", inventory.MsgLocationNotFound)
		}
		post.loc, post.locSent = loc, true
	}
	post.stock = post.unitsSent || post.eighSent || post.locSent

	post.cost, post.costSent = p.Decimal("cost")
	if post.costSent {
		rawInvoice, _ := p.Text("invoice")
		if rawInvoice == "" {
			fe.Add("invoice", inventory.MsgNoInvoiceID)
		} else if id, ok := parseID(rawInvoice); !ok {
			fe.Add("invoice", inventory.MsgInvoiceNotFound)
		} else if _, err := repos.Invoices().FindByID(ctx, id); err != nil {
			if !isNotFound(err) {
				return nil, err
			}
			fe.Add("invoice", inventory.MsgInvoiceNotFound)
		} else {
			post.invoiceID = id
		}
	}

	post.price, post.priceSent = p.Decimal("price")

	if err := fe.Err(); err != nil {
		return nil, err
	}
	return post, nil
}

// Post writes the stock, purchase and price parts present in p. Stock and
// price are only written when they change; cost accumulates on the
// (invoice, item) purchase line. The result names each sub-record written.
func (s *ItemDataService) Post(ctx context.Context, p Payload) (*ItemDataResult, error) {
	var result *ItemDataResult
	err := retryOnConflict(s.logger, "item data post", func() error {
		return s.store.Atomic(ctx, func(repos inventory.Repositories) error {
			post, err := s.validate(ctx, repos, p)
			if err != nil {
				return err
			}
			result = &ItemDataResult{Item: post.item.Barcode}

			if post.stock {
				sb, err := s.postStock(ctx, repos, post)
				if err != nil {
					return err
				}
				if sb != nil {
					resp := toStockBookResponse(sb)
					result.StockBook = &resp
				}
			}

			if post.costSent {
				line, _, err := accumulatePurchase(ctx, repos, post.invoiceID, post.item.Barcode, post.cost)
				if err != nil {
					return err
				}
				resp := toPurchaseResponse(line)
				result.Purchase = &resp
			}

			if post.priceSent {
				pr, created, err := priceFor(ctx, repos, post.item.Barcode)
				if err != nil {
					return err
				}
				if created || pr.Differs(post.price) {
					pr.Price = decimal.NewNullDecimal(post.price)
					pr.Updated = time.Now()
					if created {
						err = repos.Prices().Create(ctx, pr)
					} else {
						err = repos.Prices().Save(ctx, pr)
					}
					if err != nil {
						return err
					}
				}
				resp := toPriceResponse(pr)
				result.Price = &resp
			}
			return nil
		})
	})
	if err != nil {
		return nil, itemDataConflict(err)
	}

	s.logger.Debug("Item data posted",
		zap.String("item", result.Item),
		zap.Bool("stock", result.StockBook != nil),
		zap.Bool("purchase", result.Purchase != nil),
		zap.Bool("price", result.Price != nil),
	)
	return result, nil
}

// itemDataConflict turns a write that still collided after the retry into a
// field error on item
func itemDataConflict(err error) error {
	var ce *shared.ConflictError
	if errors.As(err, &ce) {
		return shared.NewFieldError("item", inventory.MsgRecordExists)
	}
	return err
}

// postStock returns the written stock record, or nil when nothing changed
func (s *ItemDataService) postStock(ctx context.Context, repos inventory.Repositories, post *itemDataPost) (*inventory.StockBook, error) {
	sb, created, err := stockBookFor(ctx, repos, post.item.Barcode)
	if err != nil {
		return nil, err
	}

	changed := created
	if post.unitsSent && sb.UnitsDiffer(post.units) {
		sb.Units = decimal.NewNullDecimal(post.units)
		changed = true
	}
	if post.locSent && !sameText(sb.LocationID, post.loc) {
		sb.LocationID = post.loc
		changed = true
	}
	if post.eighSent && post.item.Yardage && !sameInt16(sb.Eighths, post.eighths) {
		sb.SetEighths(post.item.Yardage, post.eighths)
		changed = true
	}
	if !changed {
		return nil, nil
	}

	sb.Updated = time.Now()
	if created {
		err = repos.StockBooks().Create(ctx, sb)
	} else {
		err = repos.StockBooks().Save(ctx, sb)
	}
	if err != nil {
		return nil, err
	}
	return sb, nil
}

func sameText(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameInt16(a, b *int16) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
