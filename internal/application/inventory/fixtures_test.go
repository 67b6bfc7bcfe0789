package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/infrastructure/cache"
	"github.com/stockroom/backend/tests/testutil"
)

// MockLabelPrinter is a mock implementation of LabelPrinter
type MockLabelPrinter struct {
	mock.Mock
}

func (m *MockLabelPrinter) PrintLabel(ctx context.Context, label Label) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// MockMetrics is a mock implementation of Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) IdentifierMinted(ctx context.Context, class inventory.IdentType) {
	m.Called(ctx, class)
}

func (m *MockMetrics) RecordCreated(ctx context.Context, entity string) {
	m.Called(ctx, entity)
}

// fixture seeds records straight through the repositories
type fixture struct {
	t     *testing.T
	ctx   context.Context
	store inventory.Store
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, ctx: context.Background(), store: testutil.NewInventoryStore(t)}
}

func (f *fixture) idents() *IdentifierService {
	locker := cache.NewInMemoryLocker()
	f.t.Cleanup(func() { _ = locker.Close() })
	return NewIdentifierService(f.store, locker, nil)
}

func (f *fixture) location(barcode, name string) {
	f.t.Helper()
	require.NoError(f.t, f.store.Identifiers().Create(f.ctx, &inventory.Identifier{Barcode: barcode, Created: time.Now()}))
	loc, err := inventory.NewLocation(barcode, name, "")
	require.NoError(f.t, err)
	require.NoError(f.t, f.store.Locations().Create(f.ctx, loc))
}

func (f *fixture) item(barcode, description string, yardage bool) {
	f.t.Helper()
	require.NoError(f.t, f.store.Identifiers().Create(f.ctx, &inventory.Identifier{Barcode: barcode, Created: time.Now()}))
	it, err := inventory.NewItemTemplate(barcode, description)
	require.NoError(f.t, err)
	it.Yardage = yardage
	require.NoError(f.t, f.store.Items().Create(f.ctx, it))
}

func (f *fixture) supplier(name string) int64 {
	f.t.Helper()
	sup, err := inventory.NewSupplier(name, "", "", "")
	require.NoError(f.t, err)
	require.NoError(f.t, f.store.Suppliers().Create(f.ctx, sup))
	return sup.ID
}

func (f *fixture) invoice(id, vendorID int64) {
	f.t.Helper()
	require.NoError(f.t, f.store.Invoices().Create(f.ctx, &inventory.Invoice{ID: id, VendorID: vendorID, Received: time.Now()}))
}

func (f *fixture) purchase(invoiceID int64, itemID, cost string) int64 {
	f.t.Helper()
	p := &inventory.Purchase{InvoiceID: invoiceID, ItemID: itemID, Cost: decimal.RequireFromString(cost)}
	require.NoError(f.t, f.store.Purchases().Create(f.ctx, p))
	return p.ID
}

func (f *fixture) receipt(id int64, count int64, amount string) {
	f.t.Helper()
	r := &inventory.Receipt{ID: id, Count: count, Amount: decimal.RequireFromString(amount), Status: inventory.ReceiptOpen, Created: time.Now()}
	require.NoError(f.t, f.store.Receipts().Create(f.ctx, r))
}

// requireFieldError asserts err is a field error carrying message for field
func requireFieldError(t *testing.T, err error, field, message string) {
	t.Helper()
	require.Error(t, err)
	fe, ok := shared.AsFieldErrors(err)
	require.True(t, ok, "expected field errors, got %v", err)
	require.Equal(t, message, fe[field], "field %s in %v", field, fe)
}
