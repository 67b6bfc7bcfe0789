package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"

	"github.com/stockroom/backend/internal/infrastructure/config"
)

func openMockDatabase(t *testing.T, opts ...Option) (*Database, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	cfg := &config.DatabaseConfig{MaxOpenConns: 4, MaxIdleConns: 2, ConnMaxLifetime: 30}
	opts = append([]Option{
		WithDialector(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"})),
		WithPreparedStatements(false),
	}, opts...)

	mock.ExpectPing()
	db, err := Open(cfg, opts...)
	require.NoError(t, err)
	return db, mock
}

func TestOpen(t *testing.T) {
	t.Run("pings on open and sizes the pool", func(t *testing.T) {
		db, mock := openMockDatabase(t)
		require.NoError(t, mock.ExpectationsWereMet())

		sqlDB, err := db.DB.DB()
		require.NoError(t, err)
		assert.Equal(t, 4, sqlDB.Stats().MaxOpenConnections)
	})

	t.Run("ping failure is reported", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer mockDB.Close()
		mock.ExpectPing().WillReturnError(assert.AnError)

		_, err = Open(&config.DatabaseConfig{},
			WithDialector(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"})),
			WithPreparedStatements(false))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to ping database")
	})

	t.Run("ping can be skipped", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer mockDB.Close()

		_, err = Open(&config.DatabaseConfig{},
			WithDialector(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"})),
			WithPreparedStatements(false),
			WithoutPing())
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDatabase_Ping(t *testing.T) {
	db, mock := openMockDatabase(t)

	mock.ExpectPing()
	assert.NoError(t, db.Ping())

	mock.ExpectPing().WillReturnError(assert.AnError)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.Error(t, db.PingContext(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Close(t *testing.T) {
	db, mock := openMockDatabase(t)

	mock.ExpectClose()
	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Repositories(t *testing.T) {
	db, _ := openMockDatabase(t)
	assert.NotNil(t, db.InventoryStore())
	assert.NotNil(t, db.Users())
}
