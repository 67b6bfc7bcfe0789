package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appinv "github.com/stockroom/backend/internal/application/inventory"
)

// BrowseHandler serves the paginated shelf and supplier pages
type BrowseHandler struct {
	BaseHandler
	locations *appinv.LocationService
	suppliers *appinv.SupplierService
	pageSize  int
}

// NewBrowseHandler creates a new BrowseHandler. pageSize <= 0 uses the default.
func NewBrowseHandler(locations *appinv.LocationService, suppliers *appinv.SupplierService, pageSize int) *BrowseHandler {
	return &BrowseHandler{locations: locations, suppliers: suppliers, pageSize: pageSize}
}

// pageNumber reads ?page=N; anything unreadable means the first page
func pageNumber(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Shelves godoc
// @Summary      Browse locations
// @Description  Pages past the end show the last page
// @Tags         browse
// @Produce      json
// @Param        page query int false "Page number"
// @Success      200 {object} shared.Page[inventory.LocationResponse]
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/shelves [get]
func (h *BrowseHandler) Shelves(c *gin.Context) {
	page, err := h.locations.Shelves(c.Request.Context(), pageNumber(c), h.pageSize)
	if err != nil {
		h.HandleError(c, err, http.StatusOK)
		return
	}
	h.OK(c, page)
}

// Suppliers godoc
// @Summary      Browse suppliers
// @Tags         browse
// @Produce      json
// @Param        page query int false "Page number"
// @Success      200 {object} shared.Page[inventory.SupplierResponse]
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/suppliers [get]
func (h *BrowseHandler) Suppliers(c *gin.Context) {
	page, err := h.suppliers.Page(c.Request.Context(), pageNumber(c), h.pageSize)
	if err != nil {
		h.HandleError(c, err, http.StatusOK)
		return
	}
	h.OK(c, page)
}
