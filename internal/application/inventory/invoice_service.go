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

// InvoiceService handles supplier invoices
type InvoiceService struct {
	store   inventory.Store
	metrics Metrics
	logger  *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(store inventory.Store, logger *zap.Logger) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{store: store, metrics: NopMetrics{}, logger: logger}
}

// SetMetrics sets the metrics recorder
func (s *InvoiceService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// resolveVendor checks the vendor_id of p names an existing supplier
func resolveVendor(ctx context.Context, repos inventory.Repositories, p Payload) (int64, error) {
	raw, _ := p.Text("vendor_id")
	if raw == "" {
		return 0, shared.NewFieldError("vendor_id", inventory.MsgSupplierRequired)
	}
	id, ok := parseID(raw)
	if !ok {
		return 0, shared.NewFieldError("vendor_id", inventory.MsgSupplierNotFound)
	}
	if _, err := repos.Suppliers().FindByID(ctx, id); err != nil {
		return 0, missing(err, "vendor_id", inventory.MsgSupplierNotFound)
	}
	return id, nil
}

// List returns the invoices matching the query filters
func (s *InvoiceService) List(ctx context.Context, params url.Values) ([]InvoiceResponse, error) {
	invoices, err := s.store.Invoices().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	invoices = query.Derive(inventory.InvoiceFields, params).Apply(invoices)
	return mapSlice(invoices, toInvoiceResponse), nil
}

// Get returns one invoice
func (s *InvoiceService) Get(ctx context.Context, rawID string) (*InvoiceResponse, error) {
	notFound := shared.NewFieldError("id", inventory.MsgInvoiceNumberNotFound(rawID))
	id, ok := parseID(rawID)
	if !ok {
		return nil, notFound
	}
	inv, err := s.store.Invoices().FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound
		}
		return nil, err
	}
	resp := toInvoiceResponse(inv)
	return &resp, nil
}

// Create numbers a new invoice one past the highest id in use
func (s *InvoiceService) Create(ctx context.Context, p Payload) (*InvoiceResponse, error) {
	inv := &inventory.Invoice{Received: time.Now()}
	if received, ok := p.Date("received"); ok {
		inv.Received = received
	}

	err := retryOnConflict(s.logger, "invoice create", func() error {
		return s.store.Atomic(ctx, func(repos inventory.Repositories) error {
			vendor, err := resolveVendor(ctx, repos, p)
			if err != nil {
				return err
			}
			inv.VendorID = vendor
			max, err := repos.Invoices().MaxID(ctx)
			if err != nil {
				return err
			}
			inv.ID = max + 1
			return repos.Invoices().Create(ctx, inv)
		})
	})
	if err != nil {
		return nil, conflictAs(err, "id", "id", inventory.MsgRecordExists)
	}

	s.metrics.RecordCreated(ctx, "invoice")
	s.logger.Info("Invoice created", zap.Int64("id", inv.ID), zap.Int64("vendor_id", inv.VendorID))
	resp := toInvoiceResponse(inv)
	return &resp, nil
}

// Update changes the vendor or received date of an invoice
func (s *InvoiceService) Update(ctx context.Context, rawID string, p Payload) (*InvoiceResponse, error) {
	notFound := shared.NewFieldError("id", inventory.MsgInvoiceNumberNotFound(rawID))
	id, ok := parseID(rawID)
	if !ok {
		return nil, notFound
	}

	var inv *inventory.Invoice
	err := s.store.Atomic(ctx, func(repos inventory.Repositories) error {
		var err error
		inv, err = repos.Invoices().FindByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return notFound
			}
			return err
		}
		if p.Has("vendor_id") {
			vendor, err := resolveVendor(ctx, repos, p)
			if err != nil {
				return err
			}
			inv.VendorID = vendor
		}
		if received, ok := p.Date("received"); ok {
			inv.Received = received
		}
		return repos.Invoices().Save(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	resp := toInvoiceResponse(inv)
	return &resp, nil
}
