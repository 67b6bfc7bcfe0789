package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
)

// ResourceService is the list/detail/create/update surface shared by the
// inventory services. key is whatever the detail route carries: a barcode,
// an item barcode or a numeric id.
type ResourceService[T any] interface {
	List(ctx context.Context, params url.Values) ([]T, error)
	Get(ctx context.Context, key string) (*T, error)
	Create(ctx context.Context, p appinv.Payload) (*T, error)
	Update(ctx context.Context, key string, p appinv.Payload) (*T, error)
}

// Patcher is implemented by resources that accept PATCH {"printed": true}
type Patcher[T any] interface {
	Patch(ctx context.Context, key string, p appinv.Payload) (*T, error)
}

// ResourceHandler serves one inventory resource:
//
//	GET  /api/<name>         list, filtered by query parameters
//	POST /api/<name>         create, 201
//	GET  /api/<name>/:key    detail
//	PUT  /api/<name>/:key    update, 202
//	PATCH /api/<name>/:key   print request, 200
type ResourceHandler[T any] struct {
	BaseHandler
	svc ResourceService[T]
}

// NewResourceHandler creates a handler for svc
func NewResourceHandler[T any](svc ResourceService[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{svc: svc}
}

// KeyParam is the route parameter naming the record
const KeyParam = "key"

// List returns {objects, count}
func (h *ResourceHandler[T]) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		h.HandleError(c, err, http.StatusOK)
		return
	}
	h.OK(c, dto.NewListResponse(records))
}

// Get returns one record
func (h *ResourceHandler[T]) Get(c *gin.Context) {
	record, err := h.svc.Get(c.Request.Context(), c.Param(KeyParam))
	if err != nil {
		h.HandleError(c, err, http.StatusOK)
		return
	}
	h.OK(c, record)
}

// Create adds a record and answers 201
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	p, ok := h.payloadOrAbort(c)
	if !ok {
		return
	}
	record, err := h.svc.Create(c.Request.Context(), p)
	if err != nil {
		h.HandleError(c, err, http.StatusOK)
		return
	}
	h.Created(c, record)
}

// Update changes the fields present in the payload and answers 202.
// Rejected updates answer 200 with the field errors like every other verb.
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	p, ok := h.payloadOrAbort(c)
	if !ok {
		return
	}
	record, err := h.svc.Update(c.Request.Context(), c.Param(KeyParam), p)
	if err != nil {
		h.HandleError(c, err, http.StatusOK)
		return
	}
	h.Accepted(c, record)
}

// PatchWith returns a PATCH handler backed by p
func (h *ResourceHandler[T]) PatchWith(p Patcher[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := h.payloadOrAbort(c)
		if !ok {
			return
		}
		record, err := p.Patch(c.Request.Context(), c.Param(KeyParam), payload)
		if err != nil {
			h.HandleError(c, err, http.StatusOK)
			return
		}
		h.OK(c, record)
	}
}
