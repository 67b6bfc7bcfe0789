package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/infrastructure/auth"
	"github.com/stockroom/backend/internal/infrastructure/logger"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist is optional; when set, revoked tokens are rejected
	TokenBlacklist auth.TokenBlacklist
	// Optional lets requests without a usable token through anonymously.
	// Permission checks further down decide whether that is enough.
	Optional bool
	Logger   *zap.Logger
}

// JWTAuthMiddlewareWithConfig validates the bearer token and stores its claims
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		claims, err := authenticate(c, cfg)
		if err != nil {
			if cfg.Optional {
				cfg.Logger.Debug("Continuing without authentication",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path),
				)
				c.Next()
				return
			}
			handleAuthError(c, cfg.Logger, err)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(logger.GinUserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))

		cfg.Logger.Debug("JWT authentication successful",
			zap.Int64("user_id", claims.UserID),
			zap.String("username", claims.Username),
		)
		c.Next()
	}
}

// errMissingToken is reported when no bearer token was sent
var errMissingToken = errors.New("missing bearer token")

func authenticate(c *gin.Context, cfg JWTMiddlewareConfig) (*auth.Claims, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" {
		return nil, errMissingToken
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return nil, errMissingToken
	}

	claims, err := cfg.JWTService.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	if cfg.TokenBlacklist == nil {
		return claims, nil
	}

	// Blacklist lookups fail open: an unreachable Redis must not lock everyone out
	ctx := c.Request.Context()
	if claims.ID != "" {
		revoked, err := cfg.TokenBlacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			cfg.Logger.Error("Failed to check token blacklist", zap.String("jti", claims.ID), zap.Error(err))
		} else if revoked {
			return nil, auth.ErrTokenBlacklisted
		}
	}
	revoked, err := cfg.TokenBlacklist.IsUserRevoked(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		cfg.Logger.Error("Failed to check user token revocation", zap.Int64("user_id", claims.UserID), zap.Error(err))
	} else if revoked {
		return nil, auth.ErrTokenBlacklisted
	}
	return claims, nil
}

// handleAuthError answers 401 with a code describing what was wrong with the token
func handleAuthError(c *gin.Context, log *zap.Logger, err error) {
	log.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)

	code, message := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		code, message = dto.ErrCodeTokenRevoked, "Token has been revoked"
	case errors.Is(err, errMissingToken):
	default:
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, requestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context, nil for anonymous requests
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}
