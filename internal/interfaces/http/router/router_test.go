package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaccounts "github.com/stockroom/backend/internal/application/accounts"
	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/infrastructure/auth"
	"github.com/stockroom/backend/internal/infrastructure/cache"
	"github.com/stockroom/backend/internal/infrastructure/config"
	"github.com/stockroom/backend/internal/infrastructure/persistence"
	"github.com/stockroom/backend/internal/infrastructure/printing"
	"github.com/stockroom/backend/internal/infrastructure/storage"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stockroom/backend/internal/interfaces/http/handler"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
	"github.com/stockroom/backend/tests/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Empty(t, r.basePath)
	assert.Empty(t, r.registrars)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	var seen bool
	r := NewRouter(engine,
		WithBasePath("/v2"),
		WithMiddleware(func(c *gin.Context) {
			seen = true
			c.Next()
		}),
	)

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(group).Setup()

	req := httptest.NewRequest(http.MethodGet, "/v2/test/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.True(t, seen)
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("location", "/location")
		assert.Equal(t, "location", g.Name())
		assert.Equal(t, "/location", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		reply := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		NewDomainGroup("test", "/test").
			GET("/x", reply).
			POST("/x", reply).
			PUT("/x", reply).
			PATCH("/x", reply).
			RegisterRoutes(engine.Group("/api"))

		for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch} {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(method, "/api/test/x", nil))
			assert.Equal(t, http.StatusOK, w.Code, method)
			assert.Equal(t, method, w.Body.String())
		}
	})

	t.Run("subgroups inherit middleware", func(t *testing.T) {
		engine := gin.New()
		parent := NewDomainGroup("api", "/api").Use(func(c *gin.Context) {
			c.Header("X-Group", "api")
			c.Next()
		})
		parent.Group("child", "/child").GET("", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		parent.RegisterRoutes(&engine.RouterGroup)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/child", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "api", w.Header().Get("X-Group"))
	})
}

func TestDomainGroup_Describe(t *testing.T) {
	api := NewDomainGroup("api", "/api")
	api.Group("location", "/location").
		GET("", nil).
		PUT("/:key", nil)
	api.Group("itemdata", "/itemdata").
		POST("/", nil)

	got := api.Describe("/v2")
	assert.Equal(t, []RouteInfo{
		{Group: "location", Method: http.MethodGet, Path: "/v2/api/location"},
		{Group: "location", Method: http.MethodPut, Path: "/v2/api/location/:key"},
		{Group: "itemdata", Method: http.MethodPost, Path: "/v2/api/itemdata/"},
	}, got)
}

func TestRouter_RoutesMatchEngine(t *testing.T) {
	f := newRoutesFixture(t)

	described := make(map[string]bool)
	for _, ri := range f.router.Routes() {
		described[ri.Method+" "+ri.Path] = true
	}
	mounted := make(map[string]bool)
	for _, ri := range f.engine.Routes() {
		mounted[ri.Method+" "+ri.Path] = true
	}

	assert.Equal(t, mounted, described)
	assert.True(t, described["GET /api/location/:"+handler.KeyParam])
	assert.True(t, described["PATCH /api/item/:"+handler.KeyParam])
	assert.True(t, described["GET /health"])
}

type okPinger struct{}

func (okPinger) Ping() error { return nil }

type routesFixture struct {
	engine *gin.Engine
	jwt    *auth.JWTService
	router *Router
}

func newRoutesFixture(t *testing.T) *routesFixture {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	store := persistence.NewGormInventoryStore(db)
	locker := cache.NewInMemoryLocker()
	t.Cleanup(func() { _ = locker.Close() })
	printer := printing.NewConsolePrinter(io.Discard)

	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "stockroom-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	idents := appinv.NewIdentifierService(store, locker, nil)
	svc := Services{
		Idents:    idents,
		Locations: appinv.NewLocationService(store, idents, printer, nil),
		Suppliers: appinv.NewSupplierService(store, nil),
		Items:     appinv.NewItemService(store, idents, printer, nil),
		Pictures:  appinv.NewPictureService(store, storage.NewStubObjectStorage(), nil),
		Stock:     appinv.NewStockService(store, nil),
		Prices:    appinv.NewPriceService(store, nil),
		Invoices:  appinv.NewInvoiceService(store, nil),
		Purchases: appinv.NewPurchaseService(store, nil),
		Receipts:  appinv.NewReceiptService(store, nil),
		ItemSales: appinv.NewItemSaleService(store, nil),
		ItemData:  appinv.NewItemDataService(store, idents, nil),
		Auth:      appaccounts.NewAuthService(persistence.NewGormUserRepository(db), jwtSvc, blacklist, nil),
		Health:    okPinger{},
	}

	engine := gin.New()
	r := NewRouter(engine, WithMiddleware(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtSvc,
		TokenBlacklist: blacklist,
		Optional:       true,
	}))).
		Register(InventoryRoutes(svc, Options{PageSize: 10})...)
	r.Setup()

	return &routesFixture{engine: engine, jwt: jwtSvc, router: r}
}

func (f *routesFixture) token(t *testing.T, perms ...string) string {
	t.Helper()
	tok, err := f.jwt.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:      3,
		Username:    "clerk",
		Permissions: perms,
	})
	require.NoError(t, err)
	return tok.Token
}

func (f *routesFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.Do(t, f.engine, testutil.Request{Method: method, Path: path, Token: token, Body: body})
}

func TestInventoryRoutes_Permissions(t *testing.T) {
	f := newRoutesFixture(t)

	t.Run("reads are open", func(t *testing.T) {
		for _, path := range []string{
			"/api/location", "/api/supplier", "/api/item", "/api/picture", "/api/stock",
			"/api/price", "/api/invoice", "/api/purchase", "/api/receipt", "/api/itemsale",
			"/api/locid", "/health",
		} {
			w := f.do(t, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})

	t.Run("anonymous writes are rejected", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/location", "", map[string]any{"name": "Shelf A"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		testutil.AssertErrorResponse(t, w, dto.ErrCodeUnauthorized)
	})

	t.Run("write needs the entity permission", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/location", f.token(t, "add_item"), map[string]any{"name": "Shelf A"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	var barcode string
	t.Run("create with add permission", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/location", f.token(t, "add_location"), map[string]any{"name": "Shelf A"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		barcode = testutil.JSONResponseAs[appinv.LocationResponse](t, w).Barcode
	})

	t.Run("update and patch need change permission", func(t *testing.T) {
		path := "/api/location/" + barcode
		w := f.do(t, http.MethodPut, path, f.token(t, "add_location"), map[string]any{"description": "top"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		change := f.token(t, "change_location")
		w = f.do(t, http.MethodPut, path, change, map[string]any{"description": "top"})
		assert.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

		w = f.do(t, http.MethodPatch, path, change, map[string]any{"printed": true})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("resolution and identifier pages", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/idents/"+barcode, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		w = f.do(t, http.MethodGet, "/inventory/identifier/"+barcode, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("itemdata post needs add_itemdata", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/itemdata", f.token(t, "add_item"), map[string]any{"item": "1000002"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = f.do(t, http.MethodPost, "/api/itemdata", f.token(t, "add_itemdata"), map[string]any{"item": "1000002"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("browse pages need a login", func(t *testing.T) {
		for _, path := range []string{"/inventory/shelves", "/inventory/suppliers"} {
			w := f.do(t, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code, path)

			w = f.do(t, http.MethodGet, path, f.token(t), nil)
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})

	t.Run("current user requires a token", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/accounts/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
