// Package testutil holds the helpers shared by stockroom tests: throwaway
// SQLite databases with the full schema, seeded users and HTTP request
// shortcuts.
package testutil

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stockroom/backend/internal/domain/accounts"
	"github.com/stockroom/backend/internal/infrastructure/persistence"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewSQLiteDB opens a private in-memory SQLite database holding the inventory
// and account tables. It is closed when the test ends.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open SQLite database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every statement must reach the same memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(append(models.InventoryModels(), &models.UserModel{})...))
	return db
}

// NewInventoryStore returns a GORM inventory store over a fresh SQLite database.
func NewInventoryStore(t *testing.T) *persistence.GormInventoryStore {
	t.Helper()
	return persistence.NewGormInventoryStore(NewSQLiteDB(t))
}

// UserFixture describes a user to seed. Zero names are left empty.
type UserFixture struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	Superuser   bool
	Permissions []string
}

// SeedUser stores an active user in db and returns it with its id set
func SeedUser(t *testing.T, db *gorm.DB, fx UserFixture) *accounts.User {
	t.Helper()

	u, err := accounts.NewUser(fx.Username, fx.Password)
	require.NoError(t, err, "Failed to build user %s", fx.Username)
	u.FirstName, u.LastName = fx.FirstName, fx.LastName
	u.IsSuperuser = fx.Superuser
	u.Grant(fx.Permissions...)

	require.NoError(t, persistence.NewGormUserRepository(db).Create(context.Background(), u))
	return u
}
