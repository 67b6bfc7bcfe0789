package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// staleReads counts how many more reads should miss rows that are already
// committed, as they do for a request racing another writer's insert.
// A negative budget misses forever.
type staleReads struct {
	remaining int
}

func (s *staleReads) miss() bool {
	if s.remaining == 0 {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	return true
}

// staleStore hides stock and price rows and understates the highest
// invoice and receipt ids while its budget lasts
type staleStore struct {
	inventory.Store
	reads *staleReads
}

func newStaleStore(store inventory.Store, misses int) staleStore {
	return staleStore{Store: store, reads: &staleReads{remaining: misses}}
}

func (s staleStore) Atomic(ctx context.Context, fn func(repos inventory.Repositories) error) error {
	return s.Store.Atomic(ctx, func(repos inventory.Repositories) error {
		return fn(staleRepos{Repositories: repos, reads: s.reads})
	})
}

type staleRepos struct {
	inventory.Repositories
	reads *staleReads
}

func (r staleRepos) StockBooks() inventory.StockBookRepository {
	return staleStockBooks{StockBookRepository: r.Repositories.StockBooks(), reads: r.reads}
}

func (r staleRepos) Prices() inventory.PriceRepository {
	return stalePrices{PriceRepository: r.Repositories.Prices(), reads: r.reads}
}

func (r staleRepos) Invoices() inventory.InvoiceRepository {
	return staleInvoices{InvoiceRepository: r.Repositories.Invoices(), reads: r.reads}
}

func (r staleRepos) Receipts() inventory.ReceiptRepository {
	return staleReceipts{ReceiptRepository: r.Repositories.Receipts(), reads: r.reads}
}

type staleStockBooks struct {
	inventory.StockBookRepository
	reads *staleReads
}

func (r staleStockBooks) FindByItem(ctx context.Context, itemID string) (*inventory.StockBook, error) {
	if r.reads.miss() {
		return nil, shared.ErrNotFound
	}
	return r.StockBookRepository.FindByItem(ctx, itemID)
}

type stalePrices struct {
	inventory.PriceRepository
	reads *staleReads
}

func (r stalePrices) FindByItem(ctx context.Context, itemID string) (*inventory.Price, error) {
	if r.reads.miss() {
		return nil, shared.ErrNotFound
	}
	return r.PriceRepository.FindByItem(ctx, itemID)
}

type staleInvoices struct {
	inventory.InvoiceRepository
	reads *staleReads
}

func (r staleInvoices) MaxID(ctx context.Context) (int64, error) {
	if r.reads.miss() {
		return 0, nil
	}
	return r.InvoiceRepository.MaxID(ctx)
}

type staleReceipts struct {
	inventory.ReceiptRepository
	reads *staleReads
}

func (r staleReceipts) MaxID(ctx context.Context) (int64, error) {
	if r.reads.miss() {
		return 0, nil
	}
	return r.ReceiptRepository.MaxID(ctx)
}

func TestStockService_UpdateAfterConcurrentCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.item("1000002", "Emerald City", false)

	_, err := NewStockService(f.store, nil).Update(ctx, "1000002", Payload{"units": "1"})
	require.NoError(t, err)

	t.Run("retry updates the row the other writer created", func(t *testing.T) {
		svc := NewStockService(newStaleStore(f.store, 1), nil)
		got, err := svc.Update(ctx, "1000002", Payload{"units": "2"})
		require.NoError(t, err)
		assert.Equal(t, "2.00", *got.Units)
	})

	t.Run("a conflict that persists is a field error", func(t *testing.T) {
		svc := NewStockService(newStaleStore(f.store, -1), nil)
		_, err := svc.Update(ctx, "1000002", Payload{"units": "3"})
		requireFieldError(t, err, "itm_id", inventory.MsgRecordExists)

		sb, err := f.store.StockBooks().FindByItem(ctx, "1000002")
		require.NoError(t, err)
		assert.True(t, sb.Units.Decimal.Equal(decimal.NewFromInt(2)))
	})
}

func TestPriceService_UpdateAfterConcurrentCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.item("1000002", "Emerald City", false)

	_, err := NewPriceService(f.store, nil).Update(ctx, "1000002", Payload{"price": "4.95"})
	require.NoError(t, err)

	got, err := NewPriceService(newStaleStore(f.store, 1), nil).Update(ctx, "1000002", Payload{"price": "5.95"})
	require.NoError(t, err)
	assert.Equal(t, "5.95", *got.Price)

	_, err = NewPriceService(newStaleStore(f.store, -1), nil).Update(ctx, "1000002", Payload{"price": "6.95"})
	requireFieldError(t, err, "itm_id", inventory.MsgRecordExists)
}

func TestItemDataService_PostAfterConcurrentCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.item("1000002", "Emerald City", false)

	_, err := NewItemDataService(f.store, f.idents(), nil).Post(ctx, Payload{"item": "1000002", "price": "7.99"})
	require.NoError(t, err)

	got, err := NewItemDataService(newStaleStore(f.store, 1), f.idents(), nil).Post(ctx, Payload{"item": "1000002", "price": "8.99"})
	require.NoError(t, err)
	require.NotNil(t, got.Price)
	assert.Equal(t, "8.99", *got.Price.Price)

	_, err = NewItemDataService(newStaleStore(f.store, -1), f.idents(), nil).Post(ctx, Payload{"item": "1000002", "price": "9.99"})
	requireFieldError(t, err, "item", inventory.MsgRecordExists)
}

func TestInvoiceService_CreateRenumbersAfterConcurrentCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	vendor := f.supplier("My supplier")
	f.invoice(1, vendor)

	got, err := NewInvoiceService(newStaleStore(f.store, 1), nil).Create(ctx, Payload{"vendor_id": vendor})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)

	_, err = NewInvoiceService(newStaleStore(f.store, -1), nil).Create(ctx, Payload{"vendor_id": vendor})
	requireFieldError(t, err, "id", inventory.MsgRecordExists)
}

func TestReceiptService_CreateRenumbersAfterConcurrentCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receipt(1, 2, "9.90")

	got, err := NewReceiptService(newStaleStore(f.store, 1), nil).Create(ctx, Payload{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)

	_, err = NewReceiptService(newStaleStore(f.store, -1), nil).Create(ctx, Payload{})
	requireFieldError(t, err, "id", inventory.MsgRecordExists)
}

// collidingStore rejects every purchase insert as a duplicate pair
type collidingStore struct {
	inventory.Store
}

func (s collidingStore) Atomic(ctx context.Context, fn func(repos inventory.Repositories) error) error {
	return s.Store.Atomic(ctx, func(repos inventory.Repositories) error {
		return fn(collidingRepos{Repositories: repos})
	})
}

type collidingRepos struct {
	inventory.Repositories
}

func (r collidingRepos) Purchases() inventory.PurchaseRepository {
	return collidingPurchases{PurchaseRepository: r.Repositories.Purchases()}
}

type collidingPurchases struct {
	inventory.PurchaseRepository
}

func (collidingPurchases) Create(context.Context, *inventory.Purchase) error {
	return &shared.ConflictError{Column: "item_id"}
}

func TestPurchaseService_CreateConflictThatPersists(t *testing.T) {
	f := newFixture(t)
	vendor := f.supplier("Choice Fabrics")
	f.invoice(2, vendor)
	f.item("1000002", "Random yardage", true)

	_, err := NewPurchaseService(collidingStore{Store: f.store}, nil).
		Create(context.Background(), Payload{"invoice_id": 2, "item_id": "1000002", "cost": "2.50"})
	requireFieldError(t, err, "item_id", inventory.MsgRecordExists)
}
