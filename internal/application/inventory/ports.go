package inventory

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// DefaultPageSize is the number of records on a browsing page
const DefaultPageSize = 25

// Label is a barcode label to be printed for a location or item
type Label struct {
	Kind    string // "Location" or "Item"
	Name    string
	Barcode string
}

// LabelPrinter produces barcode labels
type LabelPrinter interface {
	PrintLabel(ctx context.Context, label Label) error
}

// ObjectStorage stores uploaded picture files
type ObjectStorage interface {
	// Upload stores data under storageKey
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	// GenerateDownloadURL returns a time-limited URL for reading storageKey
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	// Delete removes storageKey
	Delete(ctx context.Context, storageKey string) error
}

// Metrics records inventory activity counters
type Metrics interface {
	IdentifierMinted(ctx context.Context, class inventory.IdentType)
	RecordCreated(ctx context.Context, entity string)
}

// NopMetrics discards all measurements
type NopMetrics struct{}

// IdentifierMinted does nothing
func (NopMetrics) IdentifierMinted(context.Context, inventory.IdentType) {}

// RecordCreated does nothing
func (NopMetrics) RecordCreated(context.Context, string) {}

// conflictAs maps a unique-constraint violation on column to a field error.
// Any other error is returned unchanged.
func conflictAs(err error, column, field, message string) error {
	var ce *shared.ConflictError
	if errors.As(err, &ce) && (ce.Column == "" || ce.Column == column) {
		return shared.NewFieldError(field, message)
	}
	return err
}

// retryOnConflict runs op a second time when its first attempt lost a race
// on a unique index. The retry reads the row the other writer committed and
// takes the update path instead of inserting.
func retryOnConflict(logger *zap.Logger, operation string, op func() error) error {
	err := op()
	var ce *shared.ConflictError
	if errors.As(err, &ce) {
		logger.Debug("Concurrent write won the insert, retrying",
			zap.String("operation", operation),
			zap.String("column", ce.Column))
		err = op()
	}
	return err
}

// missing converts shared.ErrNotFound to a field error
func missing(err error, field, message string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewFieldError(field, message)
	}
	return err
}

// isNotFound reports whether err is the repository not-found sentinel
func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
