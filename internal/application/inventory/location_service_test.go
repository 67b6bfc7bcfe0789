package inventory

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backend/internal/domain/inventory"
)

func TestLocationService_Create(t *testing.T) {
	f := newFixture(t)
	printer := new(MockLabelPrinter)
	svc := NewLocationService(f.store, f.idents(), printer, nil)
	ctx := context.Background()

	t.Run("name is required", func(t *testing.T) {
		_, err := svc.Create(ctx, Payload{"description": "by the door"})
		requireFieldError(t, err, "name", inventory.MsgNameRequired)
	})

	t.Run("mints a location identifier", func(t *testing.T) {
		got, err := svc.Create(ctx, Payload{"name": "Basket 1", "description": "by the door"})
		require.NoError(t, err)
		assert.True(t, inventory.IsLocationID(got.Barcode))
		assert.Equal(t, "Basket 1", got.Name)
		assert.Equal(t, "/inventory/identifier/"+got.Barcode, got.LocID)

		ident, err := f.store.Identifiers().FindByBarcode(ctx, got.Barcode)
		require.NoError(t, err)
		assert.Equal(t, got.Barcode, ident.Barcode)
	})

	t.Run("duplicate name leaves no identifier behind", func(t *testing.T) {
		before, err := f.store.Identifiers().FindAllInClass(ctx, inventory.LocationClass)
		require.NoError(t, err)

		_, err = svc.Create(ctx, Payload{"name": "Basket 1"})
		requireFieldError(t, err, "name", inventory.MsgNameUsed)

		after, err := f.store.Identifiers().FindAllInClass(ctx, inventory.LocationClass)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})
}

func TestLocationService_Update(t *testing.T) {
	f := newFixture(t)
	svc := NewLocationService(f.store, f.idents(), new(MockLabelPrinter), nil)
	ctx := context.Background()
	f.location("1007", "Shelf A")
	f.location("1010", "Shelf B")

	t.Run("unknown location", func(t *testing.T) {
		_, err := svc.Update(ctx, "1020", Payload{"name": "x"})
		requireFieldError(t, err, "barcode", inventory.MsgLocationNotFound)
	})

	t.Run("name taken by another location", func(t *testing.T) {
		_, err := svc.Update(ctx, "1007", Payload{"name": "Shelf B"})
		requireFieldError(t, err, "name", inventory.MsgNameUsed)
	})

	t.Run("keeping its own name is allowed", func(t *testing.T) {
		got, err := svc.Update(ctx, "1007", Payload{"name": "Shelf A", "description": "top"})
		require.NoError(t, err)
		assert.Equal(t, "top", got.Description)
	})

	t.Run("absent fields are untouched", func(t *testing.T) {
		got, err := svc.Update(ctx, "1007", Payload{"name": "Shelf C"})
		require.NoError(t, err)
		assert.Equal(t, "Shelf C", got.Name)
		assert.Equal(t, "top", got.Description)
	})
}

func TestLocationService_Patch(t *testing.T) {
	f := newFixture(t)
	printer := new(MockLabelPrinter)
	svc := NewLocationService(f.store, f.idents(), printer, nil)
	ctx := context.Background()
	f.location("1007", "Basket 1")

	printer.On("PrintLabel", mock.Anything, Label{Kind: "Location", Name: "Basket 1", Barcode: "1007"}).Return(nil).Once()

	got, err := svc.Patch(ctx, "1007", Payload{"printed": true})
	require.NoError(t, err)
	assert.Equal(t, "1007", got.Barcode)

	_, err = svc.Patch(ctx, "1007", Payload{"printed": false})
	require.NoError(t, err)
	printer.AssertExpectations(t)
}

func TestLocationService_ListAndShelves(t *testing.T) {
	f := newFixture(t)
	svc := NewLocationService(f.store, f.idents(), new(MockLabelPrinter), nil)
	ctx := context.Background()
	f.location("1007", "Basket 1")
	f.location("1010", "Shelf B")
	f.location("1024", "Basket 2")

	list, err := svc.List(ctx, url.Values{"name": {"Basket"}})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	page, err := svc.Shelves(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
	assert.Equal(t, 2, page.Number)
	require.Len(t, page.Objects, 1)
	assert.Equal(t, "1024", page.Objects[0].Barcode)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrevious)

	// out of range pages clamp to the last page
	page, err = svc.Shelves(ctx, 9, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Len(t, page.Objects, 3)
}
