package inventory

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backend/internal/domain/inventory"
)

func TestPictureService_Create(t *testing.T) {
	f := newFixture(t)
	storage := new(MockObjectStorage)
	svc := NewPictureService(f.store, storage, nil)
	ctx := context.Background()
	f.item("1000002", "Small Bitmap", true)

	t.Run("file is required", func(t *testing.T) {
		_, err := svc.Create(ctx, nil, Payload{"description": ""})
		requireFieldError(t, err, "photo", inventory.MsgNoFileUploaded)

		_, err = svc.Create(ctx, &Upload{Filename: "empty.bmp"}, Payload{})
		requireFieldError(t, err, "photo", inventory.MsgNoFileUploaded)
	})

	t.Run("stores the file under a fresh key", func(t *testing.T) {
		data := []byte("BM fake bitmap")
		storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, PictureKeyPrefix) && strings.HasSuffix(key, ".bmp")
		}), data, "image/bmp").Return(nil).Once()

		got, err := svc.Create(ctx, &Upload{Filename: "Small.BMP", ContentType: "image/bmp", Data: data}, Payload{"item_id": "1000002"})
		require.NoError(t, err)
		assert.NotZero(t, got.ID)
		assert.True(t, strings.HasPrefix(got.Photo, PictureKeyPrefix))
		require.NotNil(t, got.ItemID)
		assert.Equal(t, "1000002", *got.ItemID)
		assert.Equal(t, time.Now().Format(time.DateOnly), got.Uploaded)
		storage.AssertExpectations(t)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.Create(ctx, &Upload{Filename: "a.png", Data: []byte("x")}, Payload{"item_id": "1000011"})
		requireFieldError(t, err, "item_id", inventory.MsgInvalidIdentifier)
	})

	t.Run("storage failure is not recorded", func(t *testing.T) {
		storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket gone")).Once()

		_, err := svc.Create(ctx, &Upload{Filename: "b.png", Data: []byte("y")}, Payload{})
		require.Error(t, err)

		all, err := svc.List(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

// failingPictures rejects every insert
type failingPictures struct {
	inventory.PictureRepository
}

func (failingPictures) Create(context.Context, *inventory.Picture) error {
	return errors.New("database is down")
}

type failingPictureStore struct {
	inventory.Store
}

func (s failingPictureStore) Pictures() inventory.PictureRepository {
	return failingPictures{PictureRepository: s.Store.Pictures()}
}

func TestPictureService_CreateRemovesUnrecordedUpload(t *testing.T) {
	f := newFixture(t)
	storage := new(MockObjectStorage)
	svc := NewPictureService(failingPictureStore{Store: f.store}, storage, nil)

	var uploaded string
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { uploaded = args.String(1) }).
		Return(nil).Once()
	storage.On("Delete", mock.Anything, mock.MatchedBy(func(key string) bool { return key == uploaded })).
		Return(nil).Once()

	_, err := svc.Create(context.Background(), &Upload{Filename: "c.png", Data: []byte("z")}, Payload{})
	require.Error(t, err)
	storage.AssertExpectations(t)
}

func TestPictureService_GetAndList(t *testing.T) {
	f := newFixture(t)
	storage := new(MockObjectStorage)
	svc := NewPictureService(f.store, storage, nil)
	ctx := context.Background()
	f.item("1000028", "Another Bitmap", true)

	itemID := "1000028"
	for _, ref := range []*string{nil, nil, &itemID} {
		pic := &inventory.Picture{Photo: "pictures/small.bmp", Uploaded: time.Now()}
		pic.Attach(ref)
		require.NoError(t, f.store.Pictures().Create(ctx, pic))
	}

	t.Run("detail carries a download link", func(t *testing.T) {
		storage.On("GenerateDownloadURL", mock.Anything, "pictures/small.bmp", DefaultPictureURLExpiry).
			Return("https://cdn.example/pictures/small.bmp?sig=1", time.Now().Add(DefaultPictureURLExpiry), nil).Once()

		got, err := svc.Get(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, "pictures/small.bmp", got.Photo)
		assert.Equal(t, "https://cdn.example/pictures/small.bmp?sig=1", got.URL)

		_, err = svc.Get(ctx, "9")
		requireFieldError(t, err, "id", inventory.MsgRecordNotFound)
	})

	t.Run("unlinked pictures", func(t *testing.T) {
		list, err := svc.List(ctx, url.Values{"item": {"None"}})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Nil(t, list[0].ItemID)
	})

	t.Run("linked pictures", func(t *testing.T) {
		list, err := svc.List(ctx, url.Values{"item": {itemID}})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, itemID, *list[0].ItemID)
	})

	t.Run("by upload date", func(t *testing.T) {
		today := time.Now().Format(time.DateOnly)
		list, err := svc.List(ctx, url.Values{"uploaded": {"le:" + today}})
		require.NoError(t, err)
		assert.Len(t, list, 3)

		later := time.Now().AddDate(0, 0, 2).Format(time.DateOnly)
		list, err = svc.List(ctx, url.Values{"uploaded": {"eq:" + later}})
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestPictureService_Update(t *testing.T) {
	f := newFixture(t)
	svc := NewPictureService(f.store, new(MockObjectStorage), nil)
	ctx := context.Background()
	f.item("1000002", "Small Bitmap", true)

	pic := &inventory.Picture{Photo: "pictures/small.bmp", Uploaded: time.Now()}
	require.NoError(t, f.store.Pictures().Create(ctx, pic))
	id := strconv.FormatInt(pic.ID, 10)

	got, err := svc.Update(ctx, id, Payload{"item_id": "1000002"})
	require.NoError(t, err)
	require.NotNil(t, got.ItemID)
	assert.Equal(t, "1000002", *got.ItemID)

	got, err = svc.Update(ctx, id, Payload{"item_id": ""})
	require.NoError(t, err)
	require.NotNil(t, got.ItemID)
	assert.Equal(t, "", *got.ItemID)

	stored, err := f.store.Pictures().FindByID(ctx, pic.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ItemID)

	_, err = svc.Update(ctx, id, Payload{"item_id": "1000011"})
	requireFieldError(t, err, "item_id", inventory.MsgInvalidIdentifier)

	_, err = svc.Update(ctx, id, Payload{"uploaded": "today"})
	requireFieldError(t, err, "item_id", inventory.MsgNoIdentifier)
}
