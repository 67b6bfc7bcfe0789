package models

import (
	"strings"
	"time"

	"github.com/stockroom/backend/internal/domain/accounts"
)

// UserModel is the persistence model for staff users.
// Permissions are stored comma separated.
type UserModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"size:150;not null;uniqueIndex:uq_users_username"`
	Email        string    `gorm:"size:254;not null;default:''"`
	FirstName    string    `gorm:"size:150;not null;default:''"`
	LastName     string    `gorm:"size:150;not null;default:''"`
	PasswordHash string    `gorm:"size:128;not null"`
	IsActive     bool      `gorm:"not null"`
	IsStaff      bool      `gorm:"not null"`
	IsSuperuser  bool      `gorm:"not null"`
	Permissions  string    `gorm:"type:text;not null;default:''"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *accounts.User {
	var perms []string
	if m.Permissions != "" {
		perms = strings.Split(m.Permissions, ",")
	}
	return &accounts.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		IsStaff:      m.IsStaff,
		IsSuperuser:  m.IsSuperuser,
		Permissions:  perms,
	}
}

// UserModelFromDomain converts a domain User to the persistence model.
func UserModelFromDomain(u *accounts.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		IsStaff:      u.IsStaff,
		IsSuperuser:  u.IsSuperuser,
		Permissions:  strings.Join(u.Permissions, ","),
	}
}
