package integration

import (
	"context"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/infrastructure/cache"
	"github.com/stockroom/backend/internal/infrastructure/persistence"
	"github.com/stockroom/backend/internal/infrastructure/printing"
)

type inventoryServices struct {
	store     inventory.Store
	idents    *appinv.IdentifierService
	locations *appinv.LocationService
	items     *appinv.ItemService
	suppliers *appinv.SupplierService
	invoices  *appinv.InvoiceService
	purchases *appinv.PurchaseService
	itemData  *appinv.ItemDataService
}

func newInventoryServices(t *testing.T, testDB *TestDB) *inventoryServices {
	t.Helper()
	locker := cache.NewInMemoryLocker()
	t.Cleanup(func() { _ = locker.Close() })

	store := persistence.NewGormInventoryStore(testDB.DB)
	idents := appinv.NewIdentifierService(store, locker, nil)
	printer := printing.NewConsolePrinter(io.Discard)
	return &inventoryServices{
		store:     store,
		idents:    idents,
		locations: appinv.NewLocationService(store, idents, printer, nil),
		items:     appinv.NewItemService(store, idents, printer, nil),
		suppliers: appinv.NewSupplierService(store, nil),
		invoices:  appinv.NewInvoiceService(store, nil),
		purchases: appinv.NewPurchaseService(store, nil),
		itemData:  appinv.NewItemDataService(store, idents, nil),
	}
}

func TestInventoryStore_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	svc := newInventoryServices(t, testDB)
	ctx := context.Background()

	t.Run("locations mint consecutive barcodes", func(t *testing.T) {
		first, err := svc.locations.Create(ctx, appinv.Payload{"name": "Shelf A"})
		require.NoError(t, err)
		second, err := svc.locations.Create(ctx, appinv.Payload{"name": "Shelf B"})
		require.NoError(t, err)

		want, err := inventory.LocationClass.Next(first.Barcode)
		require.NoError(t, err)
		assert.Equal(t, want, second.Barcode)
	})

	t.Run("duplicate name is a field error", func(t *testing.T) {
		_, err := svc.locations.Create(ctx, appinv.Payload{"name": "Shelf A"})
		fe, ok := shared.AsFieldErrors(err)
		require.True(t, ok, "expected field errors, got %v", err)
		assert.Equal(t, inventory.MsgNameUsed, fe["name"])
	})

	t.Run("failed owner rolls the identifier back", func(t *testing.T) {
		before, err := svc.store.Identifiers().FindAllInClass(ctx, inventory.LocationClass)
		require.NoError(t, err)

		_, err = svc.locations.Create(ctx, appinv.Payload{"name": "Shelf B"})
		require.Error(t, err)

		after, err := svc.store.Identifiers().FindAllInClass(ctx, inventory.LocationClass)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("items resolve through their linked code", func(t *testing.T) {
		item, err := svc.items.Create(ctx, appinv.Payload{"description": "Emerald City", "linked_code": "0006151620418"})
		require.NoError(t, err)
		assert.True(t, inventory.IsItemID(item.Barcode))

		res, err := svc.idents.ClassifyAndResolve(ctx, "0006151620418")
		require.NoError(t, err)
		assert.Equal(t, item.Barcode, res.Identifier)
		assert.Equal(t, inventory.IdentItem, res.Type)
	})

	t.Run("duplicate description is a field error", func(t *testing.T) {
		_, err := svc.items.Create(ctx, appinv.Payload{"description": "Emerald City"})
		fe, ok := shared.AsFieldErrors(err)
		require.True(t, ok, "expected field errors, got %v", err)
		assert.Equal(t, inventory.MsgDescriptionUsed, fe["description"])
	})
}

func TestIdentifierService_ConcurrentMint(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	svc := newInventoryServices(t, testDB)
	ctx := context.Background()

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		barcodes []string
		errs     []error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			barcode, err := svc.idents.MakeItemID(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			barcodes = append(barcodes, barcode)
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	require.Len(t, barcodes, workers)

	sort.Strings(barcodes)
	expected, err := inventory.ItemClass.Next("")
	require.NoError(t, err)
	for _, barcode := range barcodes {
		assert.Equal(t, expected, barcode)
		expected, err = inventory.ItemClass.Next(barcode)
		require.NoError(t, err)
	}
}

func TestItemData_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	svc := newInventoryServices(t, testDB)
	ctx := context.Background()

	loc, err := svc.locations.Create(ctx, appinv.Payload{"name": "Bin 1"})
	require.NoError(t, err)
	item, err := svc.items.Create(ctx, appinv.Payload{"description": "Random yardage"})
	require.NoError(t, err)
	vendor, err := svc.suppliers.Create(ctx, appinv.Payload{"name": "Choice Fabrics"})
	require.NoError(t, err)
	invoice, err := svc.invoices.Create(ctx, appinv.Payload{"vendor_id": vendor.ID})
	require.NoError(t, err)

	_, err = svc.itemData.Post(ctx, appinv.Payload{
		"item":    item.Barcode,
		"units":   4,
		"loc":     loc.Barcode,
		"price":   "12.50",
		"cost":    "3.25",
		"invoice": invoice.ID,
	})
	require.NoError(t, err)

	_, err = svc.itemData.Post(ctx, appinv.Payload{"item": item.Barcode, "cost": "1.75", "invoice": invoice.ID})
	require.NoError(t, err)

	got, err := svc.itemData.Get(ctx, item.Barcode)
	require.NoError(t, err)
	require.NotNil(t, got.ItemDataDetail)
	assert.Equal(t, loc.Barcode, *got.Loc)
	assert.Equal(t, "4.00", *got.Units)
	assert.Equal(t, "12.50", *got.Price)
	assert.Equal(t, "5.00", *got.Cost)
	assert.Equal(t, invoice.ID, *got.Invoice)
}
