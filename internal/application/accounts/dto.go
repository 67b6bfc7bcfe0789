package accounts

import "time"

// LoginInput is the login request
type LoginInput struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginResult carries the issued access token and the signed-in user
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
	User        MeResult  `json:"user"`
}

// MeResult describes the signed-in user
type MeResult struct {
	Username  string `json:"username"`
	Initials  string `json:"initials"`
	UserClass string `json:"user_class"`
}

// LogoutInput identifies the token to revoke
type LogoutInput struct {
	TokenJTI string
	TTL      time.Duration
	UserID   int64
}
