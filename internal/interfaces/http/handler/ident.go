package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
)

// IdentHandler serves barcode resolution and location identifiers
type IdentHandler struct {
	BaseHandler
	idents *appinv.IdentifierService
}

// NewIdentHandler creates a new IdentHandler
func NewIdentHandler(idents *appinv.IdentifierService) *IdentHandler {
	return &IdentHandler{idents: idents}
}

// Resolve godoc
// @Summary      Resolve a scanned digit string
// @Description  Matches the digits against barcodes, then linked codes, and reports LOC, ITM or OTHER
// @Tags         idents
// @Produce      json
// @Param        digitstring path string true "Scanned digits"
// @Success      200 {object} inventory.Resolution
// @Router       /api/idents/{digitstring} [get]
func (h *IdentHandler) Resolve(c *gin.Context) {
	res, err := h.idents.ClassifyAndResolve(c.Request.Context(), c.Param("digitstring"))
	if err != nil {
		h.HandleError(c, err, http.StatusOK)
		return
	}
	h.OK(c, res)
}

// ListLocIDs godoc
// @Summary      List location identifiers
// @Tags         locid
// @Produce      json
// @Success      200 {object} dto.ListResponse[inventory.IdentifierResponse]
// @Router       /api/locid [get]
func (h *IdentHandler) ListLocIDs(c *gin.Context) {
	ids, err := h.idents.ListLocIDs(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		h.HandleError(c, err, http.StatusOK)
		return
	}
	h.OK(c, dto.NewListResponse(ids))
}

// GetLocID godoc
// @Summary      Get a location identifier
// @Tags         locid
// @Produce      json
// @Param        barcode path string true "Location barcode"
// @Success      200 {object} inventory.IdentifierResponse
// @Router       /api/locid/{barcode} [get]
func (h *IdentHandler) GetLocID(c *gin.Context) {
	id, err := h.idents.GetLocID(c.Request.Context(), c.Param(KeyParam))
	if err != nil {
		h.HandleError(c, err, http.StatusOK)
		return
	}
	h.OK(c, id)
}

// CreateLocID godoc
// @Summary      Allocate a location identifier
// @Description  Registers the posted barcode, or mints the next free one when none is sent
// @Tags         locid
// @Accept       json
// @Produce      json
// @Success      201 {object} inventory.IdentifierResponse
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/locid [post]
func (h *IdentHandler) CreateLocID(c *gin.Context) {
	p, ok := h.payloadOrAbort(c)
	if !ok {
		return
	}
	id, err := h.idents.CreateLocID(c.Request.Context(), p)
	if err != nil {
		h.HandleError(c, err, http.StatusOK)
		return
	}
	h.Created(c, id)
}

// IdentifierDetail godoc
// @Summary      Identifier record
// @Description  Target of the locID and itmID links
// @Tags         idents
// @Produce      json
// @Param        barcode path string true "Barcode"
// @Success      200 {object} inventory.IdentifierResponse
// @Failure      404 {object} dto.FieldErrorResponse
// @Router       /inventory/identifier/{barcode} [get]
func (h *IdentHandler) IdentifierDetail(c *gin.Context) {
	id, err := h.idents.GetIdentifier(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.HandleError(c, err, http.StatusNotFound)
		return
	}
	h.OK(c, id)
}
