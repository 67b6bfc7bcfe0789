package inventory

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/query"
	"github.com/stockroom/backend/internal/domain/shared"
)

// AllocatorConfig bounds the allocation lock
type AllocatorConfig struct {
	// LockTTL is how long an allocation lease lives if its holder dies
	LockTTL time.Duration
	// LockWait is how long a request waits for a busy lease
	LockWait time.Duration
}

// DefaultAllocatorConfig returns the default allocation lock settings
func DefaultAllocatorConfig() AllocatorConfig {
	return AllocatorConfig{
		LockTTL:  5 * time.Second,
		LockWait: 3 * time.Second,
	}
}

// IdentifierService mints and resolves barcodes
type IdentifierService struct {
	store   inventory.Store
	locker  shared.Locker
	config  AllocatorConfig
	metrics Metrics
	logger  *zap.Logger
}

// NewIdentifierService creates a new IdentifierService. locker may be nil,
// in which case allocation relies on the primary key alone.
func NewIdentifierService(store inventory.Store, locker shared.Locker, logger *zap.Logger) *IdentifierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentifierService{
		store:   store,
		locker:  locker,
		config:  DefaultAllocatorConfig(),
		metrics: NopMetrics{},
		logger:  logger,
	}
}

// SetConfig sets the allocation lock settings
func (s *IdentifierService) SetConfig(cfg AllocatorConfig) {
	s.config = cfg
}

// SetMetrics sets the metrics recorder
func (s *IdentifierService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

func allocationKey(class inventory.Class) string {
	return "stockroom:ident:" + string(class.Type)
}

// mint allocates the next barcode of class and creates its identifier.
// owner, when set, runs in the same transaction so the record that owns
// the barcode commits or rolls back together with it.
func (s *IdentifierService) mint(
	ctx context.Context,
	class inventory.Class,
	linkedCode *string,
	owner func(repos inventory.Repositories, barcode string) error,
) (string, error) {
	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, allocationKey(class), s.config.LockTTL, s.config.LockWait)
		if err != nil {
			return "", fmt.Errorf("lock %s allocation: %w", class.Type, err)
		}
		defer release()
	}

	var barcode string
	err := s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		max, err := repos.Identifiers().MaxBarcode(ctx, class)
		if err != nil {
			return err
		}
		barcode, err = class.Next(max)
		if err != nil {
			return err
		}
		ident := &inventory.Identifier{Barcode: barcode, LinkedCode: linkedCode, Created: time.Now()}
		if err := repos.Identifiers().Create(ctx, ident); err != nil {
			return err
		}
		if owner != nil {
			return owner(repos, barcode)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.metrics.IdentifierMinted(ctx, class.Type)
	s.logger.Debug("Identifier minted",
		zap.String("class", string(class.Type)),
		zap.String("barcode", barcode))
	return barcode, nil
}

// MakeLocationID mints the next location barcode
func (s *IdentifierService) MakeLocationID(ctx context.Context) (string, error) {
	return s.mint(ctx, inventory.LocationClass, nil, nil)
}

// MakeItemID mints the next item barcode
func (s *IdentifierService) MakeItemID(ctx context.Context) (string, error) {
	return s.mint(ctx, inventory.ItemClass, nil, nil)
}

// ClassifyAndResolve matches a scanned digit string against barcodes, then
// against linked codes, and types the result by the matched barcode.
func (s *IdentifierService) ClassifyAndResolve(ctx context.Context, digitstring string) (*inventory.Resolution, error) {
	if !inventory.IsDigitString(digitstring) {
		return nil, shared.NewFieldError("digitstring", inventory.MsgDigitsOnly)
	}

	res := &inventory.Resolution{Digitstring: digitstring, Type: inventory.IdentOther}
	ident, err := s.store.Identifiers().FindByBarcode(ctx, digitstring)
	if isNotFound(err) {
		ident, err = s.store.Identifiers().FindByLinkedCode(ctx, digitstring)
	}
	if isNotFound(err) {
		return res, nil
	}
	if err != nil {
		return nil, err
	}

	res.Identifier = ident.Barcode
	res.Type = inventory.Classify(ident.Barcode)
	return res, nil
}

// GetIdentifier returns any identifier record by barcode
func (s *IdentifierService) GetIdentifier(ctx context.Context, barcode string) (*IdentifierResponse, error) {
	ident, err := s.store.Identifiers().FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, missing(err, "barcode", inventory.MsgRecordNotFound)
	}
	resp := toIdentifierResponse(ident)
	return &resp, nil
}

// ListLocIDs lists location identifiers matching the query filters
func (s *IdentifierService) ListLocIDs(ctx context.Context, params url.Values) ([]IdentifierResponse, error) {
	idents, err := s.store.Identifiers().FindAllInClass(ctx, inventory.LocationClass)
	if err != nil {
		return nil, err
	}
	idents = query.Derive(inventory.IdentifierFields, params).Apply(idents)
	return mapSlice(idents, toIdentifierResponse), nil
}

// GetLocID returns one location identifier
func (s *IdentifierService) GetLocID(ctx context.Context, barcode string) (*IdentifierResponse, error) {
	if !inventory.IsLocationID(barcode) {
		return nil, shared.NewFieldError("barcode", inventory.MsgBarcodeNotLocationID)
	}
	return s.GetIdentifier(ctx, barcode)
}

// CreateLocID registers the supplied location barcode, or mints the next
// one when none is sent.
func (s *IdentifierService) CreateLocID(ctx context.Context, p Payload) (*IdentifierResponse, error) {
	barcode, _ := p.Text("barcode")
	if barcode == "" {
		minted, err := s.MakeLocationID(ctx)
		if err != nil {
			return nil, err
		}
		return s.GetIdentifier(ctx, minted)
	}

	if !inventory.IsLocationID(barcode) {
		return nil, shared.NewFieldError("barcode", inventory.MsgBarcodeNotLocationID)
	}
	ident := &inventory.Identifier{Barcode: barcode, Created: time.Now()}
	err := s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		if _, err := repos.Identifiers().FindByBarcode(ctx, barcode); err == nil {
			return shared.NewFieldError("barcode", inventory.MsgBarcodeUsed)
		} else if !isNotFound(err) {
			return err
		}
		return repos.Identifiers().Create(ctx, ident)
	})
	if err != nil {
		return nil, conflictAs(err, "barcode", "barcode", inventory.MsgBarcodeUsed)
	}

	s.metrics.IdentifierMinted(ctx, inventory.IdentLocation)
	resp := toIdentifierResponse(ident)
	return &resp, nil
}
