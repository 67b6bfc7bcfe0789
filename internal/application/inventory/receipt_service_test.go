package inventory

import (
	"context"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backend/internal/domain/inventory"
)

func TestReceiptService(t *testing.T) {
	f := newFixture(t)
	svc := NewReceiptService(f.store, nil)
	ctx := context.Background()
	f.receipt(1001, 1, "7.99")
	f.receipt(1002, 1, "14.79")

	t.Run("detail", func(t *testing.T) {
		_, err := svc.Get(ctx, "5")
		requireFieldError(t, err, "id", "Receipt #5 not found")

		got, err := svc.Get(ctx, "1002")
		require.NoError(t, err)
		assert.Equal(t, "14.79", got.Amount)
	})

	t.Run("list by amount", func(t *testing.T) {
		list, err := svc.List(ctx, url.Values{"amount": {"eq:7.99"}})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, int64(1001), list[0].ID)
	})

	t.Run("create opens the next receipt", func(t *testing.T) {
		got, err := svc.Create(ctx, Payload{})
		require.NoError(t, err)
		assert.Equal(t, int64(1003), got.ID)
		assert.Equal(t, "OPEN", got.Status)
		assert.Equal(t, "0.00", got.Amount)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.Update(ctx, "1001", Payload{"status": "AWK!"})
		requireFieldError(t, err, "status", "'AWK!' is not a valid status")
	})

	t.Run("update", func(t *testing.T) {
		got, err := svc.Update(ctx, "1001", Payload{"count": 5, "amount": 24.79})
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.Count)
		assert.Equal(t, "24.79", got.Amount)

		got, err = svc.Update(ctx, "1001", Payload{"status": "CMPL"})
		require.NoError(t, err)
		assert.Equal(t, "CMPL", got.Status)
		assert.Equal(t, int64(5), got.Count)
	})
}

func TestItemSaleService(t *testing.T) {
	f := newFixture(t)
	svc := NewItemSaleService(f.store, nil)
	ctx := context.Background()
	f.receipt(1001, 1, "7.99")
	f.item("1000002", "random yardage", true)
	f.item("1000015", "more yardage", true)

	t.Run("create reports both references", func(t *testing.T) {
		_, err := svc.Create(ctx, Payload{"receipt_id": 111})
		requireFieldError(t, err, "receipt_id", "Receipt #111 not found")
		requireFieldError(t, err, "item_id", inventory.MsgItemRequired)

		_, err = svc.Create(ctx, Payload{"item_id": 111})
		requireFieldError(t, err, "receipt_id", inventory.MsgReceiptRequired)
		requireFieldError(t, err, "item_id", "Item 111 not found")
	})

	var id string
	t.Run("create", func(t *testing.T) {
		got, err := svc.Create(ctx, Payload{"receipt_id": 1001, "item_id": 1000002, "count": 2, "amount": 7.98})
		require.NoError(t, err)
		assert.NotZero(t, got.ID)
		assert.Equal(t, int64(1001), got.Receipt)
		assert.Equal(t, "1000002", got.Item)
		assert.Equal(t, "7.98", got.Amount)
		assert.Nil(t, got.Adjusted)
		id = strconv.FormatInt(got.ID, 10)
	})

	t.Run("missing sale", func(t *testing.T) {
		_, err := svc.Get(ctx, "11")
		requireFieldError(t, err, "id", "ItemSale #11 not found")
		_, err = svc.Update(ctx, "11", Payload{"adjusted": ""})
		requireFieldError(t, err, "id", "ItemSale #11 not found")
	})

	t.Run("update moves the sale to another item", func(t *testing.T) {
		got, err := svc.Update(ctx, id, Payload{"receipt_id": 1001, "item_id": "1000015"})
		require.NoError(t, err)
		assert.Equal(t, "1000015", got.Item)

		_, err = svc.Update(ctx, id, Payload{"item_id": "1000099"})
		requireFieldError(t, err, "item_id", "Item 1000099 not found")
	})

	t.Run("adjustment set and cleared", func(t *testing.T) {
		got, err := svc.Update(ctx, id, Payload{"adjusted": 7.99})
		require.NoError(t, err)
		require.NotNil(t, got.Adjusted)
		assert.Equal(t, "7.99", *got.Adjusted)

		got, err = svc.Update(ctx, id, Payload{"adjusted": ""})
		require.NoError(t, err)
		assert.Nil(t, got.Adjusted)
	})

	t.Run("list by count", func(t *testing.T) {
		list, err := svc.List(ctx, url.Values{"count": {"eq:2"}})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "1000015", list[0].Item)
	})
}
