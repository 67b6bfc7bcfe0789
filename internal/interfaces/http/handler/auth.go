package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	appaccounts "github.com/stockroom/backend/internal/application/accounts"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles sign in, the current user and sign out
type AuthHandler struct {
	BaseHandler
	authService *appaccounts.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *appaccounts.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary      User login
// @Description  Checks the password and issues a bearer token carrying the user's permissions
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body accounts.LoginInput true "Login credentials"
// @Success      200 {object} dto.Response{data=accounts.LoginResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /api/accounts/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req appaccounts.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, dto.ErrCodeInvalidInput, loginBindMessage(err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err, http.StatusBadRequest)
		return
	}
	h.Success(c, result)
}

// Me godoc
// @Summary      Current user
// @Tags         accounts
// @Produce      json
// @Success      200 {object} dto.Response{data=accounts.MeResult}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/accounts/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}
	me, err := h.authService.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		h.HandleError(c, err, http.StatusBadRequest)
		return
	}
	h.Success(c, me)
}

// Logout godoc
// @Summary      User logout
// @Description  Revokes the presented token
// @Tags         accounts
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /api/accounts/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}
	err := h.authService.Logout(c.Request.Context(), appaccounts.LogoutInput{
		TokenJTI: claims.ID,
		TTL:      claims.GetRemainingTTL(),
		UserID:   claims.UserID,
	})
	if err != nil {
		h.HandleError(c, err, http.StatusBadRequest)
		return
	}
	h.Success(c, gin.H{"message": "Logged out"})
}

func loginBindMessage(err error) string {
	msgs := middleware.ValidationMessages(err)
	if len(msgs) == 0 {
		return "Malformed request body"
	}
	fields := make([]string, 0, len(msgs))
	for field := range msgs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+msgs[field])
	}
	return strings.Join(parts, "; ")
}
