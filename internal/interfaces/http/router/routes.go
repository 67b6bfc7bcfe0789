package router

import (
	"go.uber.org/zap"

	appaccounts "github.com/stockroom/backend/internal/application/accounts"
	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/interfaces/http/handler"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

// Services holds the application services exposed over HTTP
type Services struct {
	Idents    *appinv.IdentifierService
	Locations *appinv.LocationService
	Suppliers *appinv.SupplierService
	Items     *appinv.ItemService
	Pictures  *appinv.PictureService
	Stock     *appinv.StockService
	Prices    *appinv.PriceService
	Invoices  *appinv.InvoiceService
	Purchases *appinv.PurchaseService
	Receipts  *appinv.ReceiptService
	ItemSales *appinv.ItemSaleService
	ItemData  *appinv.ItemDataService
	Auth      *appaccounts.AuthService
	Health    handler.Pinger
}

// Options tunes route registration
type Options struct {
	// PageSize is the page length of the browse pages
	PageSize int
	Logger   *zap.Logger
}

// InventoryRoutes returns the registrars for /api, /inventory and /health.
// Write routes expect JWT claims to be loaded by an earlier middleware.
func InventoryRoutes(svc Services, opts Options) []RouteRegistrar {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	key := "/:" + handler.KeyParam

	identH := handler.NewIdentHandler(svc.Idents)
	itemDataH := handler.NewItemDataHandler(svc.ItemData)
	pictureH := handler.NewPictureHandler(svc.Pictures)
	authH := handler.NewAuthHandler(svc.Auth)
	browseH := handler.NewBrowseHandler(svc.Locations, svc.Suppliers, opts.PageSize)

	api := NewDomainGroup("api", "/api")
	api.Group("idents", "/idents").
		GET("/:digitstring", identH.Resolve)
	api.Group("locid", "/locid").
		Use(middleware.ModelPermissions("locid", log)).
		GET("", identH.ListLocIDs).
		POST("", identH.CreateLocID).
		GET(key, identH.GetLocID)

	location := handler.NewResourceHandler[appinv.LocationResponse](svc.Locations)
	resourceGroup(api, "location", location, log).
		PATCH(key, location.PatchWith(svc.Locations))
	item := handler.NewResourceHandler[appinv.ItemResponse](svc.Items)
	resourceGroup(api, "item", item, log).
		PATCH(key, item.PatchWith(svc.Items))

	resourceGroup(api, "supplier", handler.NewResourceHandler[appinv.SupplierResponse](svc.Suppliers), log)
	resourceGroup(api, "stock", handler.NewResourceHandler[appinv.StockBookResponse](svc.Stock), log)
	resourceGroup(api, "price", handler.NewResourceHandler[appinv.PriceResponse](svc.Prices), log)
	resourceGroup(api, "invoice", handler.NewResourceHandler[appinv.InvoiceResponse](svc.Invoices), log)
	resourceGroup(api, "purchase", handler.NewResourceHandler[appinv.PurchaseResponse](svc.Purchases), log)
	resourceGroup(api, "receipt", handler.NewResourceHandler[appinv.ReceiptResponse](svc.Receipts), log)
	resourceGroup(api, "itemsale", handler.NewResourceHandler[appinv.ItemSaleResponse](svc.ItemSales), log)

	// picture create takes a multipart upload
	api.Group("picture", "/picture").
		Use(middleware.ModelPermissions("picture", log)).
		GET("", pictureH.List).
		POST("", pictureH.Create).
		GET(key, pictureH.Get).
		PUT(key, pictureH.Update)

	api.Group("itemdata", "/itemdata").
		Use(middleware.ModelPermissions("itemdata", log)).
		GET("/:digitstring", itemDataH.Get).
		POST("", itemDataH.Post)

	api.Group("accounts", "/accounts").
		POST("/login", authH.Login).
		GET("/me", middleware.RequireAuthenticated(), authH.Me).
		POST("/logout", middleware.RequireAuthenticated(), authH.Logout)

	pages := NewDomainGroup("inventory", "/inventory").
		GET("/identifier/:barcode", identH.IdentifierDetail).
		GET("/shelves", middleware.RequireAuthenticated(), browseH.Shelves).
		GET("/suppliers", middleware.RequireAuthenticated(), browseH.Suppliers)

	health := NewDomainGroup("health", "").
		GET("/health", handler.NewHealthHandler(svc.Health).Check)

	return []RouteRegistrar{api, pages, health}
}

// resourceGroup mounts list, create, detail and update for entity. Writes
// need the add_/change_ permission named after it.
func resourceGroup[T any](parent *DomainGroup, entity string, h *handler.ResourceHandler[T], log *zap.Logger) *DomainGroup {
	key := "/:" + handler.KeyParam
	return parent.Group(entity, "/"+entity).
		Use(middleware.ModelPermissions(entity, log)).
		GET("", h.List).
		POST("", h.Create).
		GET(key, h.Get).
		PUT(key, h.Update)
}
