package accounts

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/stockroom/backend/internal/domain/shared"
)

const bcryptCost = 12

// ErrInvalidCredentials hides whether the username or the password was wrong
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// User is a staff member allowed to sign in
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	Permissions  []string
}

// NewUser creates an active user with a hashed password
func NewUser(username, password string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, shared.NewFieldError("username", "A username is required")
	}
	u := &User{Username: username, IsActive: true}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword replaces the stored hash
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewFieldError("password", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword reports whether password matches the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HasPermission reports whether the user holds perm; superusers hold all permissions
func (u *User) HasPermission(perm string) bool {
	return u.IsSuperuser || slices.Contains(u.Permissions, perm)
}

// Grant adds permissions the user does not already hold
func (u *User) Grant(perms ...string) {
	for _, p := range perms {
		if !slices.Contains(u.Permissions, p) {
			u.Permissions = append(u.Permissions, p)
		}
	}
}

// Initials returns the upper-cased first letters of the first and last name,
// with a blank standing in for a missing name.
func (u *User) Initials() string {
	return cases.Upper(language.Und).String(firstRune(u.FirstName) + firstRune(u.LastName))
}

// Class is "super", "staff", "superstaff" or "" depending on the user's flags
func (u *User) Class() string {
	var b strings.Builder
	if u.IsSuperuser {
		b.WriteString("super")
	}
	if u.IsStaff {
		b.WriteString("staff")
	}
	return b.String()
}

func firstRune(s string) string {
	if s == "" {
		return " "
	}
	r, _ := utf8.DecodeRuneInString(s)
	return string(r)
}

// UserRepository persists users
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
}
