package printing

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	invapp "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/infrastructure/config"
	"github.com/stockroom/backend/internal/infrastructure/storage"
)

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RenderResult), args.Error(1)
}

func (m *MockRenderer) Close() error {
	return m.Called().Error(0)
}

func TestConsolePrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewConsolePrinter(&buf)

	require.NoError(t, p.PrintLabel(context.Background(), invapp.Label{Kind: "Location", Name: "Shelf A", Barcode: "1007"}))
	require.NoError(t, p.PrintLabel(context.Background(), invapp.Label{Kind: "Item", Name: "Emerald City", Barcode: "1000002"}))

	assert.Equal(t, "Printing barcode label for Location \"Shelf A\"\n"+
		"Printing barcode label for Item \"Emerald City\"\n", buf.String())
}

func TestLabelTemplate_Render(t *testing.T) {
	tmpl := NewLabelTemplate()

	html, err := tmpl.Render(invapp.Label{Kind: "Item", Name: "yellow brick <road>", Barcode: "1000015"})
	require.NoError(t, err)
	assert.Contains(t, html, "<title>1000015</title>")
	assert.Contains(t, html, ">ITEM<")
	assert.Contains(t, html, "Yellow Brick &lt;Road&gt;")
	assert.Equal(t, 14, strings.Count(html, "<span style="))

	_, err = tmpl.Render(invapp.Label{Kind: "Item", Name: "nothing"})
	assert.Error(t, err)
}

func TestBarWidths(t *testing.T) {
	assert.Equal(t, []float64{0.75, 1, 0.75, 1.75}, barWidths("0a9"))
	assert.Empty(t, barWidths(""))
}

func TestPDFLabelPrinter(t *testing.T) {
	ctx := context.Background()
	store := storage.NewStubObjectStorage()
	renderer := new(MockRenderer)
	p := NewPDFLabelPrinter(renderer, store, config.PrintingConfig{StoragePrefix: "labels/"}, nil)
	label := invapp.Label{Kind: "Location", Name: "Shelf A", Barcode: "1007"}

	t.Run("stores the rendered pdf", func(t *testing.T) {
		renderer.On("Render", ctx, mock.MatchedBy(func(req *RenderRequest) bool {
			return req.WidthIn == 2.25 && req.HeightIn == 1.25 && strings.Contains(req.HTML, "Shelf A")
		})).Return(&RenderResult{PDFData: []byte("%PDF-1.4")}, nil).Once()

		require.NoError(t, p.PrintLabel(ctx, label))
		assert.Equal(t, "labels/location/1007.pdf", p.StorageKey(label))

		obj, ok := store.Object("labels/location/1007.pdf")
		require.True(t, ok)
		assert.Equal(t, "%PDF-1.4", string(obj.Data))
		assert.Equal(t, "application/pdf", obj.ContentType)
	})

	t.Run("render failure stores nothing", func(t *testing.T) {
		renderer.On("Render", ctx, mock.Anything).Return(nil, errors.New("no chrome")).Once()

		err := p.PrintLabel(ctx, invapp.Label{Kind: "Item", Name: "Emerald City", Barcode: "1000002"})
		require.Error(t, err)
		assert.Equal(t, 1, store.Len())
	})

	renderer.On("Close").Return(nil).Once()
	require.NoError(t, p.Close())
	renderer.AssertExpectations(t)
}

func TestNewLabelPrinter(t *testing.T) {
	p, closer, err := NewLabelPrinter(config.PrintingConfig{Mode: ModeConsole}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &ConsolePrinter{}, p)
	assert.NoError(t, closer.Close())

	_, _, err = NewLabelPrinter(config.PrintingConfig{Mode: ModePDF}, nil, nil)
	assert.Error(t, err)

	_, _, err = NewLabelPrinter(config.PrintingConfig{Mode: "laser"}, nil, nil)
	assert.Error(t, err)
}
