package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaccounts "github.com/stockroom/backend/internal/application/accounts"
	"github.com/stockroom/backend/internal/infrastructure/auth"
	"github.com/stockroom/backend/internal/infrastructure/config"
	"github.com/stockroom/backend/internal/infrastructure/persistence"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
	"github.com/stockroom/backend/tests/testutil"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	testutil.SeedUser(t, db, testutil.UserFixture{Username: "diana", Password: "supremes1", FirstName: "Diana", LastName: "Ross"})
	users := persistence.NewGormUserRepository(db)

	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "stockroom-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	h := NewAuthHandler(appaccounts.NewAuthService(users, jwtSvc, blacklist, nil))

	r := gin.New()
	g := r.Group("/api/accounts")
	g.POST("/login", h.Login)
	g.GET("/anonymous-me", h.Me)
	authed := g.Group("", middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtSvc,
		TokenBlacklist: blacklist,
	}))
	authed.GET("/me", h.Me)
	authed.POST("/logout", h.Logout)
	return r
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := testutil.Do(t, r, testutil.Request{
		Method: http.MethodPost,
		Path:   "/api/accounts/login",
		Body:   map[string]string{"username": username, "password": password},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := testutil.JSONResponseAs[struct {
		Success bool                    `json:"success"`
		Data    appaccounts.LoginResult `json:"data"`
	}](t, w)
	require.True(t, resp.Success)
	assert.Equal(t, "Bearer", resp.Data.TokenType)
	assert.Equal(t, "diana", resp.Data.User.Username)
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func TestAuthHandler_Login(t *testing.T) {
	r := newAuthRouter(t)

	t.Run("valid credentials", func(t *testing.T) {
		login(t, r, "diana", "supremes1")
	})

	t.Run("wrong password", func(t *testing.T) {
		w := testutil.Do(t, r, testutil.Request{
			Method: http.MethodPost,
			Path:   "/api/accounts/login",
			Body:   map[string]string{"username": "diana", "password": "motown123"},
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		testutil.AssertErrorResponse(t, w, dto.ErrCodeInvalidCredentials)
	})

	t.Run("missing password", func(t *testing.T) {
		w := testutil.Do(t, r, testutil.Request{
			Method: http.MethodPost,
			Path:   "/api/accounts/login",
			Body:   map[string]string{"username": "diana"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		testutil.AssertErrorResponse(t, w, dto.ErrCodeInvalidInput)
	})
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	r := newAuthRouter(t)
	token := login(t, r, "diana", "supremes1")

	w := testutil.Do(t, r, testutil.Request{Path: "/api/accounts/me", Token: token})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := testutil.DecodeJSON(t, w)["data"].(map[string]any)
	assert.Equal(t, "diana", data["username"])
	assert.Equal(t, "DR", data["initials"])

	w = testutil.Do(t, r, testutil.Request{Path: "/api/accounts/anonymous-me"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	testutil.AssertErrorResponse(t, w, dto.ErrCodeUnauthorized)

	w = testutil.Do(t, r, testutil.Request{Method: http.MethodPost, Path: "/api/accounts/logout", Token: token})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = testutil.Do(t, r, testutil.Request{Path: "/api/accounts/me", Token: token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	testutil.AssertErrorResponse(t, w, dto.ErrCodeTokenRevoked)
}
