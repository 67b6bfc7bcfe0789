package printing

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	invapp "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/infrastructure/config"
)

// Printing modes
const (
	ModeConsole = "console"
	ModePDF     = "pdf"
)

var (
	_ invapp.LabelPrinter = (*ConsolePrinter)(nil)
	_ invapp.LabelPrinter = (*PDFLabelPrinter)(nil)
)

// ConsolePrinter announces each label on a writer
type ConsolePrinter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsolePrinter creates a printer writing to w, or stdout when w is nil
func NewConsolePrinter(w io.Writer) *ConsolePrinter {
	if w == nil {
		w = os.Stdout
	}
	return &ConsolePrinter{w: w}
}

// PrintLabel writes `Printing barcode label for <Kind> "<name>"`
func (p *ConsolePrinter) PrintLabel(_ context.Context, label invapp.Label) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintf(p.w, "Printing barcode label for %s %q\n", label.Kind, label.Name)
	return err
}

// PDFRenderer turns an HTML document into PDF bytes
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// RenderRequest contains the parameters for rendering HTML to PDF
type RenderRequest struct {
	HTML     string
	WidthIn  float64
	HeightIn float64
	// Timeout overrides the renderer's default
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	PDFData        []byte
	RenderDuration time.Duration
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
	ErrCodeInvalidSize   = "INVALID_LABEL_SIZE"
	ErrCodeStorageFailed = "STORAGE_FAILED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

// PDFLabelPrinter renders labels to PDF and keeps them in object storage
type PDFLabelPrinter struct {
	renderer PDFRenderer
	storage  invapp.ObjectStorage
	labels   *LabelTemplate
	widthIn  float64
	heightIn float64
	prefix   string
	logger   *zap.Logger
}

// NewPDFLabelPrinter creates a PDF label printer
func NewPDFLabelPrinter(renderer PDFRenderer, storage invapp.ObjectStorage, cfg config.PrintingConfig, logger *zap.Logger) *PDFLabelPrinter {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &PDFLabelPrinter{
		renderer: renderer,
		storage:  storage,
		labels:   NewLabelTemplate(),
		widthIn:  cfg.LabelWidthIn,
		heightIn: cfg.LabelHeightIn,
		prefix:   cfg.StoragePrefix,
		logger:   logger,
	}
	if p.widthIn <= 0 {
		p.widthIn = 2.25
	}
	if p.heightIn <= 0 {
		p.heightIn = 1.25
	}
	return p
}

// StorageKey is where the PDF for label is stored
func (p *PDFLabelPrinter) StorageKey(label invapp.Label) string {
	return p.prefix + strings.ToLower(label.Kind) + "/" + label.Barcode + ".pdf"
}

// PrintLabel renders label and uploads the PDF
func (p *PDFLabelPrinter) PrintLabel(ctx context.Context, label invapp.Label) error {
	html, err := p.labels.Render(label)
	if err != nil {
		return err
	}
	res, err := p.renderer.Render(ctx, &RenderRequest{HTML: html, WidthIn: p.widthIn, HeightIn: p.heightIn})
	if err != nil {
		return err
	}
	key := p.StorageKey(label)
	if err := p.storage.Upload(ctx, key, res.PDFData, "application/pdf"); err != nil {
		return NewRenderError(ErrCodeStorageFailed, "failed to store label", err)
	}
	p.logger.Info("Barcode label stored",
		zap.String("kind", label.Kind),
		zap.String("barcode", label.Barcode),
		zap.String("key", key),
		zap.Duration("render_duration", res.RenderDuration))
	return nil
}

// Close releases the renderer
func (p *PDFLabelPrinter) Close() error {
	return p.renderer.Close()
}

// NewLabelPrinter builds the printer selected by cfg.Mode.
// The returned closer releases the browser for the pdf mode.
func NewLabelPrinter(cfg config.PrintingConfig, storage invapp.ObjectStorage, logger *zap.Logger) (invapp.LabelPrinter, io.Closer, error) {
	switch cfg.Mode {
	case "", ModeConsole:
		return NewConsolePrinter(os.Stdout), nopCloser{}, nil
	case ModePDF:
		if storage == nil {
			return nil, nil, fmt.Errorf("printing mode %q needs object storage", cfg.Mode)
		}
		renderer, err := NewChromedpRenderer(&ChromedpConfig{
			ExecPath:       cfg.ChromePath,
			DefaultTimeout: cfg.RenderTimeout,
			NoSandbox:      true,
			Logger:         logger,
		})
		if err != nil {
			return nil, nil, err
		}
		p := NewPDFLabelPrinter(renderer, storage, cfg, logger)
		return p, p, nil
	default:
		return nil, nil, fmt.Errorf("unknown printing mode %q", cfg.Mode)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
