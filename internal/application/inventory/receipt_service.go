package inventory

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/query"
	"github.com/stockroom/backend/internal/domain/shared"
)

// ReceiptService handles point-of-sale receipts
type ReceiptService struct {
	store   inventory.Store
	metrics Metrics
	logger  *zap.Logger
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(store inventory.Store, logger *zap.Logger) *ReceiptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptService{store: store, metrics: NopMetrics{}, logger: logger}
}

// SetMetrics sets the metrics recorder
func (s *ReceiptService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// applyReceiptFields copies count, amount and status from p
func applyReceiptFields(r *inventory.Receipt, p Payload) error {
	if raw, ok := p.Text("status"); ok {
		status, err := inventory.ParseReceiptStatus(raw)
		if err != nil {
			return err
		}
		r.Status = status
	}
	if n, ok := p.Int("count"); ok {
		r.Count = n
	}
	if amount, ok := p.Decimal("amount"); ok {
		r.Amount = amount
	}
	return nil
}

func findReceipt(ctx context.Context, repos inventory.Repositories, rawID string) (*inventory.Receipt, error) {
	notFound := shared.NewFieldError("id", inventory.MsgReceiptNotFound(rawID))
	id, ok := parseID(rawID)
	if !ok {
		return nil, notFound
	}
	r, err := repos.Receipts().FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound
		}
		return nil, err
	}
	return r, nil
}

// List returns the receipts matching the query filters
func (s *ReceiptService) List(ctx context.Context, params url.Values) ([]ReceiptResponse, error) {
	receipts, err := s.store.Receipts().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	receipts = query.Derive(inventory.ReceiptFields, params).Apply(receipts)
	return mapSlice(receipts, toReceiptResponse), nil
}

// Get returns one receipt
func (s *ReceiptService) Get(ctx context.Context, rawID string) (*ReceiptResponse, error) {
	r, err := findReceipt(ctx, s.store, rawID)
	if err != nil {
		return nil, err
	}
	resp := toReceiptResponse(r)
	return &resp, nil
}

// Create opens a receipt numbered one past the highest id in use
func (s *ReceiptService) Create(ctx context.Context, p Payload) (*ReceiptResponse, error) {
	r := &inventory.Receipt{Status: inventory.ReceiptOpen, Created: time.Now()}
	if err := applyReceiptFields(r, p); err != nil {
		return nil, err
	}

	err := retryOnConflict(s.logger, "receipt create", func() error {
		return s.store.Atomic(ctx, func(repos inventory.Repositories) error {
			max, err := repos.Receipts().MaxID(ctx)
			if err != nil {
				return err
			}
			r.ID = max + 1
			return repos.Receipts().Create(ctx, r)
		})
	})
	if err != nil {
		return nil, conflictAs(err, "id", "id", inventory.MsgRecordExists)
	}

	s.metrics.RecordCreated(ctx, "receipt")
	resp := toReceiptResponse(r)
	return &resp, nil
}

// Update applies count, amount and status changes
func (s *ReceiptService) Update(ctx context.Context, rawID string, p Payload) (*ReceiptResponse, error) {
	var r *inventory.Receipt
	err := s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		var err error
		r, err = findReceipt(ctx, repos, rawID)
		if err != nil {
			return err
		}
		if err := applyReceiptFields(r, p); err != nil {
			return err
		}
		return repos.Receipts().Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	resp := toReceiptResponse(r)
	return &resp, nil
}
