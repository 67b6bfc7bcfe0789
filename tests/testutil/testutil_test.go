package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backend/internal/domain/inventory"
)

func TestNewInventoryStore(t *testing.T) {
	store := NewInventoryStore(t)
	ctx := context.Background()

	require.NoError(t, store.Identifiers().Create(ctx, &inventory.Identifier{Barcode: "1007"}))
	ident, err := store.Identifiers().FindByBarcode(ctx, "1007")
	require.NoError(t, err)
	assert.Equal(t, "1007", ident.Barcode)

	// each store is private
	other := NewInventoryStore(t)
	_, err = other.Identifiers().FindByBarcode(ctx, "1007")
	assert.Error(t, err)
}

func TestSeedUser(t *testing.T) {
	db := NewSQLiteDB(t)
	u := SeedUser(t, db, UserFixture{
		Username:    "Martha",
		Password:    "vandellas",
		FirstName:   "Martha",
		LastName:    "Reeves",
		Permissions: []string{"add_item"},
	})
	assert.NotZero(t, u.ID)

	var count int64
	require.NoError(t, db.Table("users").Where("username = ?", "martha").Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.True(t, u.HasPermission("add_item"))
	assert.Equal(t, "MR", u.Initials())
}

func TestDo(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]interface{}
		_ = c.ShouldBindJSON(&body)
		c.JSON(http.StatusCreated, gin.H{
			"auth": c.GetHeader("Authorization"),
			"body": body,
		})
	})
	engine.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"errors": gin.H{"name": "A name is required"}})
	})

	w := Do(t, engine, Request{Method: http.MethodPost, Path: "/echo", Body: map[string]string{"a": "b"}, Token: "tok"})
	require.Equal(t, http.StatusCreated, w.Code)
	resp := DecodeJSON(t, w)
	assert.Equal(t, "Bearer tok", resp["auth"])
	assert.Equal(t, map[string]interface{}{"a": "b"}, resp["body"])
	AssertNoFieldErrors(t, w)

	w = Do(t, engine, Request{Path: "/fail"})
	AssertFieldError(t, w, "name", "A name is required")
}

func TestJSONResponseAs(t *testing.T) {
	engine := gin.New()
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"count": 2})
	})

	type result struct {
		Count int `json:"count"`
	}
	w := Do(t, engine, Request{Path: "/"})
	assert.Equal(t, 2, JSONResponseAs[result](t, w).Count)
}
