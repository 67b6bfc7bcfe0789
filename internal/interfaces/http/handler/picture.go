package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
)

// PhotoField is the multipart field carrying the picture file
const PhotoField = "photo"

// PictureHandler serves picture uploads. Listing, detail and update go
// through the shared resource handler; creation needs the uploaded file.
type PictureHandler struct {
	*ResourceHandler[appinv.PictureResponse]
	svc *appinv.PictureService
}

// NewPictureHandler creates a new PictureHandler
func NewPictureHandler(svc *appinv.PictureService) *PictureHandler {
	return &PictureHandler{
		ResourceHandler: NewResourceHandler[appinv.PictureResponse](pictureResource{svc}),
		svc:             svc,
	}
}

// pictureResource adapts PictureService to ResourceService; plain creates
// without a file are rejected by the service.
type pictureResource struct {
	*appinv.PictureService
}

func (r pictureResource) Create(ctx context.Context, p appinv.Payload) (*appinv.PictureResponse, error) {
	return r.PictureService.Create(ctx, nil, p)
}

// Create godoc
// @Summary      Upload a picture
// @Description  multipart/form-data with the file in "photo" and an optional item_id
// @Tags         picture
// @Accept       multipart/form-data
// @Produce      json
// @Param        photo formData file true "Picture file"
// @Param        item_id formData string false "Item barcode"
// @Success      201 {object} inventory.PictureResponse
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/picture [post]
func (h *PictureHandler) Create(c *gin.Context) {
	p, ok := h.payloadOrAbort(c)
	if !ok {
		return
	}

	upload, err := readUpload(c)
	if err != nil {
		h.BadRequest(c, dto.ErrCodeBadRequest, err.Error())
		return
	}

	pic, err := h.svc.Create(c.Request.Context(), upload, p)
	if err != nil {
		h.HandleError(c, err, http.StatusOK)
		return
	}
	h.Created(c, pic)
}

// readUpload returns the photo part, or nil when none was sent
func readUpload(c *gin.Context) (*appinv.Upload, error) {
	fh, err := c.FormFile(PhotoField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", PhotoField, err)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", PhotoField, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", PhotoField, err)
	}
	return &appinv.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
