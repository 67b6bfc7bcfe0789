package accounts

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/accounts"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/infrastructure/auth"
)

// AuthService handles sign in, the current user and sign out
type AuthService struct {
	users     accounts.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new authentication service.
// A nil blacklist makes Logout a no-op.
func NewAuthService(users accounts.UserRepository, jwt *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{users: users, jwt: jwt, blacklist: blacklist, logger: logger}
}

// Login checks the password and issues an access token carrying the user's permissions
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	s.logger.Info("Login attempt", zap.String("username", username))

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("User not found during login", zap.String("username", username))
			return nil, accounts.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		s.logger.Warn("Login attempt for inactive account", zap.String("username", username))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", username))
		return nil, accounts.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:      user.ID,
		Username:    user.Username,
		Permissions: user.Permissions,
		Superuser:   user.IsSuperuser,
	})
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	s.logger.Info("User logged in successfully", zap.Int64("user_id", user.ID))
	return &LoginResult{
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        toMeResult(user),
	}, nil
}

// Me returns the display summary of the signed-in user
func (s *AuthService) Me(ctx context.Context, userID int64) (*MeResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}
	res := toMeResult(user)
	return &res, nil
}

// Logout revokes the presented token until it would have expired
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("User logout", zap.Int64("user_id", input.UserID))
	if s.blacklist == nil || input.TokenJTI == "" || input.TTL <= 0 {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, input.TokenJTI, input.TTL); err != nil {
		s.logger.Error("Failed to revoke token", zap.Error(err))
		return err
	}
	return nil
}

func toMeResult(u *accounts.User) MeResult {
	return MeResult{Username: u.Username, Initials: u.Initials(), UserClass: u.Class()}
}
