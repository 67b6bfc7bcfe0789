package inventory

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/query"
	"github.com/stockroom/backend/internal/domain/shared"
)

// PictureKeyPrefix is the object storage folder holding uploaded photos
const PictureKeyPrefix = "pictures/"

// DefaultPictureURLExpiry is the lifetime of a picture download link
const DefaultPictureURLExpiry = 15 * time.Minute

// PictureService handles uploaded item photos
type PictureService struct {
	store     inventory.Store
	storage   ObjectStorage
	urlExpiry time.Duration
	metrics   Metrics
	logger    *zap.Logger
}

// NewPictureService creates a new PictureService
func NewPictureService(store inventory.Store, storage ObjectStorage, logger *zap.Logger) *PictureService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PictureService{
		store:     store,
		storage:   storage,
		urlExpiry: DefaultPictureURLExpiry,
		metrics:   NopMetrics{},
		logger:    logger,
	}
}

// SetMetrics sets the metrics recorder
func (s *PictureService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// SetURLExpiry sets the lifetime of download links
func (s *PictureService) SetURLExpiry(d time.Duration) {
	if d > 0 {
		s.urlExpiry = d
	}
}

// pictureKey builds a collision-free storage key keeping the file extension
func pictureKey(filename string) string {
	return PictureKeyPrefix + uuid.New().String() + strings.ToLower(filepath.Ext(filename))
}

// resolvePictureItem validates an item_id reference; "" detaches
func resolvePictureItem(ctx context.Context, repos inventory.Repositories, itemID string) (*string, error) {
	if itemID == "" {
		return nil, nil
	}
	if _, err := repos.Items().FindByBarcode(ctx, itemID); err != nil {
		return nil, missing(err, "item_id", inventory.MsgInvalidIdentifier)
	}
	return &itemID, nil
}

// List returns the pictures matching the query filters
func (s *PictureService) List(ctx context.Context, params url.Values) ([]PictureResponse, error) {
	pictures, err := s.store.Pictures().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	pictures = query.Derive(inventory.PictureFields, params).Apply(pictures)
	return mapSlice(pictures, toPictureResponse), nil
}

// Get returns one picture with a download link
func (s *PictureService) Get(ctx context.Context, rawID string) (*PictureResponse, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, shared.NewFieldError("id", inventory.MsgRecordNotFound)
	}
	pic, err := s.store.Pictures().FindByID(ctx, id)
	if err != nil {
		return nil, missing(err, "id", inventory.MsgRecordNotFound)
	}

	resp := toPictureResponse(pic)
	link, _, err := s.storage.GenerateDownloadURL(ctx, pic.Photo, s.urlExpiry)
	if err != nil {
		s.logger.Warn("Failed to generate picture URL", zap.Int64("id", pic.ID), zap.Error(err))
	} else {
		resp.URL = link
	}
	return &resp, nil
}

// Create stores the uploaded photo and records it, optionally attached to item_id
func (s *PictureService) Create(ctx context.Context, file *Upload, p Payload) (*PictureResponse, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, shared.NewFieldError("photo", inventory.MsgNoFileUploaded)
	}

	pic := &inventory.Picture{Photo: pictureKey(file.Filename), Uploaded: time.Now()}
	itemID, _ := p.Text("item_id")
	if itemID != "" {
		ref, err := resolvePictureItem(ctx, s.store, itemID)
		if err != nil {
			return nil, err
		}
		pic.Attach(ref)
	}

	if err := s.storage.Upload(ctx, pic.Photo, file.Data, file.ContentType); err != nil {
		return nil, fmt.Errorf("upload picture: %w", err)
	}
	if err := s.store.Pictures().Create(ctx, pic); err != nil {
		if delErr := s.storage.Delete(ctx, pic.Photo); delErr != nil {
			s.logger.Warn("Failed to remove unrecorded picture",
				zap.String("key", pic.Photo), zap.Error(delErr))
		}
		return nil, err
	}

	s.metrics.RecordCreated(ctx, "picture")
	s.logger.Info("Picture uploaded",
		zap.Int64("id", pic.ID),
		zap.String("key", pic.Photo),
		zap.Int("size", len(file.Data)),
	)
	resp := toPictureResponse(pic)
	return &resp, nil
}

// Update attaches the picture to item_id, or detaches it when item_id is "".
// The response echoes "" for a detached picture.
func (s *PictureService) Update(ctx context.Context, rawID string, p Payload) (*PictureResponse, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, shared.NewFieldError("id", inventory.MsgRecordNotFound)
	}
	itemID, sent := p.Text("item_id")
	if !sent {
		return nil, shared.NewFieldError("item_id", inventory.MsgNoIdentifier)
	}

	var pic *inventory.Picture
	err := s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		var err error
		pic, err = repos.Pictures().FindByID(ctx, id)
		if err != nil {
			return missing(err, "id", inventory.MsgRecordNotFound)
		}
		ref, err := resolvePictureItem(ctx, repos, itemID)
		if err != nil {
			return err
		}
		pic.Attach(ref)
		return repos.Pictures().Save(ctx, pic)
	})
	if err != nil {
		return nil, err
	}

	resp := toPictureResponse(pic)
	resp.ItemID = &itemID
	return &resp, nil
}
