package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/interfaces/http/dto"
)

// Permission actions. A permission string is "<action>_<entity>", e.g. "add_location".
const (
	ActionAdd    = "add"
	ActionChange = "change"
)

// PermissionFor returns the permission a request method needs on entity.
// Safe methods need none and yield "".
func PermissionFor(method, entity string) string {
	switch method {
	case http.MethodPost:
		return ActionAdd + "_" + entity
	case http.MethodPut, http.MethodPatch:
		return ActionChange + "_" + entity
	default:
		return ""
	}
}

// ModelPermissions guards a resource: reads are open, writes need the
// add_/change_ permission for entity. Run it after JWTAuthMiddlewareWithConfig.
func ModelPermissions(entity string, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		perm := PermissionFor(c.Request.Method, entity)
		if perm == "" {
			c.Next()
			return
		}
		checkPermission(c, perm, log)
	}
}

// RequirePermission demands perm whatever the method
func RequirePermission(perm string, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		checkPermission(c, perm, log)
	}
}

// RequireAuthenticated rejects anonymous requests
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTClaims(c) == nil {
			denyPermission(c, "Authentication required")
			return
		}
		c.Next()
	}
}

func checkPermission(c *gin.Context, perm string, log *zap.Logger) {
	claims := GetJWTClaims(c)
	if claims == nil {
		denyPermission(c, "Authentication required")
		return
	}
	if !claims.HasPermission(perm) {
		log.Warn("Permission denied",
			zap.Int64("user_id", claims.UserID),
			zap.String("permission", perm),
			zap.String("path", c.Request.URL.Path),
		)
		denyPermission(c, "Missing permission "+perm)
		return
	}
	c.Next()
}

// denyPermission answers 401 for both missing credentials and missing permissions
func denyPermission(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, message, requestID(c)))
}
