// Package integration runs the stockroom stores and API against a real
// PostgreSQL started with testcontainers.
//
// One container serves the whole package. Migrations run once into a
// template database and every test receives its own clone of it.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stockroom/backend/internal/infrastructure/migration"
)

const templateDatabase = "stockroom_template"

var cluster struct {
	once      sync.Once
	err       error
	container *tcpostgres.PostgresContainer
	baseDSN   string
	admin     *sql.DB
	seq       atomic.Int64
}

func TestMain(m *testing.M) {
	code := m.Run()
	if cluster.admin != nil {
		_ = cluster.admin.Close()
	}
	if cluster.container != nil {
		if err := cluster.container.Terminate(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "terminate postgres container: %v\n", err)
		}
	}
	os.Exit(code)
}

// TestDB is a migrated database owned by a single test
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	Name  string
	DSN   string
	t     *testing.T
}

// NewTestDB clones the migrated template into a fresh database. The clone
// is dropped when the test ends.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	cluster.once.Do(startCluster)
	require.NoError(t, cluster.err, "Failed to start PostgreSQL")

	name := fmt.Sprintf("stockroom_test_%d", cluster.seq.Add(1))
	_, err := cluster.admin.Exec(fmt.Sprintf("CREATE DATABASE %s TEMPLATE %s", name, templateDatabase))
	require.NoError(t, err, "Failed to clone template database")

	dsn, err := withDatabase(cluster.baseDSN, name)
	require.NoError(t, err)

	db, sqlDB := connectToDatabase(t, dsn)
	tdb := &TestDB{DB: db, SqlDB: sqlDB, Name: name, DSN: dsn, t: t}
	t.Cleanup(tdb.Close)
	return tdb
}

// Close closes the connection and drops the database
func (tdb *TestDB) Close() {
	if tdb.SqlDB != nil {
		_ = tdb.SqlDB.Close()
	}
	if _, err := cluster.admin.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s WITH (FORCE)", tdb.Name)); err != nil {
		tdb.t.Logf("Warning: Failed to drop database %s: %v", tdb.Name, err)
	}
}

// CleanTables truncates every table except the migration bookkeeping
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to get table names")

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tdb.t.Logf("Warning: Failed to truncate table %s: %v", table, err)
		}
	}
}

func startCluster() {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(templateDatabase),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		cluster.err = fmt.Errorf("start container: %w", err)
		return
	}
	cluster.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		cluster.err = fmt.Errorf("connection string: %w", err)
		return
	}
	cluster.baseDSN = dsn

	if err := migrateTemplate(dsn); err != nil {
		cluster.err = err
		return
	}

	adminDSN, err := withDatabase(dsn, "postgres")
	if err != nil {
		cluster.err = err
		return
	}
	admin, err := sql.Open("pgx", adminDSN)
	if err != nil {
		cluster.err = fmt.Errorf("open admin connection: %w", err)
		return
	}
	cluster.admin = admin
}

// migrateTemplate applies every migration to the template and closes all of
// its connections, since Postgres refuses to clone a template in use.
func migrateTemplate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open template: %w", err)
	}
	m, err := migration.New(db, zap.NewNop())
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("create migrator: %w", err)
	}
	upErr := m.Up()
	closeErr := m.Close()
	_ = db.Close()
	if upErr != nil {
		return fmt.Errorf("migrate template: %w", upErr)
	}
	return closeErr
}

func withDatabase(dsn, name string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	u.Path = "/" + name
	return u.String(), nil
}

func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, sqlDB
}
