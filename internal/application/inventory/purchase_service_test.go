package inventory

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

func TestInvoiceService(t *testing.T) {
	f := newFixture(t)
	svc := NewInvoiceService(f.store, nil)
	ctx := context.Background()
	vendor := f.supplier("Choice Fabrics")
	f.invoice(104, vendor)

	t.Run("create errors", func(t *testing.T) {
		_, err := svc.Create(ctx, Payload{"supplier": 11})
		requireFieldError(t, err, "vendor_id", inventory.MsgSupplierRequired)

		_, err = svc.Create(ctx, Payload{"vendor_id": 11})
		requireFieldError(t, err, "vendor_id", inventory.MsgSupplierNotFound)
	})

	t.Run("create numbers past the highest id", func(t *testing.T) {
		got, err := svc.Create(ctx, Payload{"vendor_id": vendor})
		require.NoError(t, err)
		assert.Equal(t, int64(105), got.ID)
		assert.Equal(t, vendor, got.Vendor)
		assert.Equal(t, time.Now().Format(time.DateOnly), got.Received)
	})

	t.Run("detail", func(t *testing.T) {
		_, err := svc.Get(ctx, "1")
		requireFieldError(t, err, "id", "Invoice #1 not found")

		got, err := svc.Get(ctx, "104")
		require.NoError(t, err)
		assert.Equal(t, int64(104), got.ID)
	})

	t.Run("update", func(t *testing.T) {
		got, err := svc.Update(ctx, "104", Payload{"received": "2024-03-01"})
		require.NoError(t, err)
		assert.Equal(t, "2024-03-01", got.Received)

		_, err = svc.Update(ctx, "104", Payload{"vendor_id": 999})
		requireFieldError(t, err, "vendor_id", inventory.MsgSupplierNotFound)

		_, err = svc.Update(ctx, "7", Payload{})
		requireFieldError(t, err, "id", "Invoice #7 not found")
	})
}

func TestPurchaseService_Create(t *testing.T) {
	f := newFixture(t)
	svc := NewPurchaseService(f.store, nil)
	ctx := context.Background()
	vendor := f.supplier("Choice Fabrics")
	f.invoice(2, vendor)
	f.invoice(3, vendor)
	f.item("1000028", "Emerald City", true)
	f.item("1000002", "Random yardage", true)
	f.purchase(3, "1000002", "10.00")

	t.Run("missing references are reported together", func(t *testing.T) {
		_, err := svc.Create(ctx, Payload{"purchase": "order"})
		requireFieldError(t, err, "invoice_id", inventory.MsgInvoiceRequired)
		requireFieldError(t, err, "item_id", inventory.MsgItemRequired)
	})

	t.Run("unknown references are reported together", func(t *testing.T) {
		_, err := svc.Create(ctx, Payload{"invoice_id": 99, "item_id": "1000015"})
		requireFieldError(t, err, "invoice_id", "Invoice #99 not found")
		requireFieldError(t, err, "item_id", "Item 1000015 not found")
	})

	t.Run("new line", func(t *testing.T) {
		got, err := svc.Create(ctx, Payload{"invoice_id": 2, "item_id": "1000028"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Invoice)
		assert.Equal(t, "1000028", got.Item)
		assert.Equal(t, "0.00", got.Cost)
	})

	t.Run("unreadable cost is ignored", func(t *testing.T) {
		got, err := svc.Create(ctx, Payload{"invoice_id": 2, "item_id": "1000028", "cost": "cash"})
		require.NoError(t, err)
		assert.Equal(t, "0.00", got.Cost)
	})

	t.Run("existing pair accumulates cost", func(t *testing.T) {
		got, err := svc.Create(ctx, Payload{"invoice_id": 3, "item_id": "1000002", "cost": "12.99"})
		require.NoError(t, err)
		assert.Equal(t, "22.99", got.Cost)

		all, err := svc.List(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestPurchaseService_Update(t *testing.T) {
	f := newFixture(t)
	svc := NewPurchaseService(f.store, nil)
	ctx := context.Background()
	vendor := f.supplier("Choice Fabrics")
	f.invoice(2, vendor)
	f.item("1000002", "Random yardage", true)
	id := strconv.FormatInt(f.purchase(2, "1000002", "5.00"), 10)

	_, err := svc.Update(ctx, "5", Payload{"cost": "19.95"})
	requireFieldError(t, err, "id", "Purchase #5 not found")
	_, err = svc.Get(ctx, "5")
	requireFieldError(t, err, "id", "Purchase #5 not found")

	got, err := svc.Update(ctx, id, Payload{"item": 28, "item_id": "1000028", "invoice_id": 9})
	require.NoError(t, err)
	assert.Equal(t, "1000002", got.Item)
	assert.Equal(t, int64(2), got.Invoice)

	got, err = svc.Update(ctx, id, Payload{"cost": "19.95"})
	require.NoError(t, err)
	assert.Equal(t, "19.95", got.Cost)

	got, err = svc.Update(ctx, id, Payload{"cost": "-10%"})
	require.NoError(t, err)
	assert.Equal(t, "19.95", got.Cost)
}

// conflictOnceStore fails the first purchase create with a unique violation
// and then runs seed, as if another request had created the line first.
type conflictOnceStore struct {
	inventory.Store
	seed  func()
	fired bool
}

func (s *conflictOnceStore) Atomic(ctx context.Context, fn func(repos inventory.Repositories) error) error {
	err := s.Store.Atomic(ctx, func(repos inventory.Repositories) error {
		return fn(&conflictOnceRepos{Repositories: repos, store: s})
	})
	var ce *shared.ConflictError
	if errors.As(err, &ce) {
		s.seed()
	}
	return err
}

type conflictOnceRepos struct {
	inventory.Repositories
	store *conflictOnceStore
}

func (r *conflictOnceRepos) Purchases() inventory.PurchaseRepository {
	return &conflictOncePurchases{PurchaseRepository: r.Repositories.Purchases(), store: r.store}
}

type conflictOncePurchases struct {
	inventory.PurchaseRepository
	store *conflictOnceStore
}

func (p *conflictOncePurchases) Create(ctx context.Context, line *inventory.Purchase) error {
	if !p.store.fired {
		p.store.fired = true
		return &shared.ConflictError{Column: "item_id"}
	}
	return p.PurchaseRepository.Create(ctx, line)
}

func TestPurchaseService_CreateRetriesOnConflict(t *testing.T) {
	f := newFixture(t)
	vendor := f.supplier("Choice Fabrics")
	f.invoice(2, vendor)
	f.item("1000002", "Random yardage", true)

	store := &conflictOnceStore{Store: f.store, seed: func() {
		f.purchase(2, "1000002", "1.00")
	}}
	svc := NewPurchaseService(store, nil)

	got, err := svc.Create(context.Background(), Payload{"invoice_id": 2, "item_id": "1000002", "cost": "2.50"})
	require.NoError(t, err)
	assert.Equal(t, "3.50", got.Cost)
	assert.True(t, store.fired)
}
