package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appinv "github.com/stockroom/backend/internal/application/inventory"
)

// ItemDataHandler serves the combined item/stock/price/purchase endpoint
type ItemDataHandler struct {
	BaseHandler
	svc *appinv.ItemDataService
}

// NewItemDataHandler creates a new ItemDataHandler
func NewItemDataHandler(svc *appinv.ItemDataService) *ItemDataHandler {
	return &ItemDataHandler{svc: svc}
}

// Get godoc
// @Summary      Item data for a scanned code
// @Description  Unknown codes return only the digitstring
// @Tags         itemdata
// @Produce      json
// @Param        digitstring path string true "Barcode or linked code"
// @Success      200 {object} inventory.ItemDataResponse
// @Router       /api/itemdata/{digitstring} [get]
func (h *ItemDataHandler) Get(c *gin.Context) {
	data, err := h.svc.Get(c.Request.Context(), c.Param("digitstring"))
	if err != nil {
		h.HandleError(c, err, http.StatusOK)
		return
	}
	h.OK(c, data)
}

// Post godoc
// @Summary      Record stock, cost and price for an item
// @Description  Writes only what changed; reports the StockBook, purchase and price records touched
// @Tags         itemdata
// @Accept       json
// @Produce      json
// @Success      201 {object} inventory.ItemDataResult
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/itemdata [post]
func (h *ItemDataHandler) Post(c *gin.Context) {
	p, ok := h.payloadOrAbort(c)
	if !ok {
		return
	}
	result, err := h.svc.Post(c.Request.Context(), p)
	if err != nil {
		h.HandleError(c, err, http.StatusOK)
		return
	}
	h.Created(c, result)
}
