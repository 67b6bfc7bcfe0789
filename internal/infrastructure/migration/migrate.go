// Package migration applies and authors the SQL schema migrations.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/stockroom/backend/migrations"
)

// Migrator runs schema migrations with golang-migrate
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// Option configures where a Migrator reads its migrations from
type Option func(*options)

type options struct {
	dir    string
	source fs.FS
}

// WithDirectory reads migrations from a directory on disk instead of the
// copies compiled into the binary
func WithDirectory(dir string) Option {
	return func(o *options) { o.dir = dir }
}

// WithFS reads migrations from fsys
func WithFS(fsys fs.FS) Option {
	return func(o *options) { o.source = fsys }
}

// New creates a Migrator over an open Postgres connection.
// Without options the embedded migrations are used.
func New(db *sql.DB, logger *zap.Logger, opts ...Option) (*Migrator, error) {
	o := options{source: migrations.FS}
	for _, opt := range opts {
		opt(&o)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	var m *migrate.Migrate
	if o.dir != "" {
		m, err = migrate.NewWithDatabaseInstance("file://"+o.dir, "postgres", driver)
	} else {
		src, serr := iofs.New(o.source, ".")
		if serr != nil {
			return nil, fmt.Errorf("failed to open migration source: %w", serr)
		}
		m, err = migrate.NewWithInstance("iofs", src, "postgres", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{migrate: m, logger: logger}, nil
}

// run executes step and treats ErrNoChange as success
func (m *Migrator) run(action string, step func() error) (changed bool, err error) {
	err = step()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to apply", zap.String("action", action))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("migration %s failed: %w", action, err)
	}
	return true, nil
}

func (m *Migrator) logVersion(msg string) {
	version, dirty, err := m.Version()
	if err != nil {
		m.logger.Warn("Failed to read migration version", zap.Error(err))
		return
	}
	m.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}

// Up applies all pending migrations
func (m *Migrator) Up() error {
	m.logger.Info("Running migrations up")
	changed, err := m.run("up", m.migrate.Up)
	if changed {
		m.logVersion("Migrations completed")
	}
	return err
}

// Down rolls back every migration
func (m *Migrator) Down() error {
	m.logger.Info("Running migrations down")
	changed, err := m.run("down", m.migrate.Down)
	if changed {
		m.logger.Info("All migrations rolled back")
	}
	return err
}

// Steps applies n migrations; negative n rolls back
func (m *Migrator) Steps(n int) error {
	m.logger.Info("Running migration steps", zap.Int("steps", n))
	changed, err := m.run("steps", func() error { return m.migrate.Steps(n) })
	if changed {
		m.logVersion("Migration steps completed")
	}
	return err
}

// GoTo migrates up or down to version
func (m *Migrator) GoTo(version uint) error {
	m.logger.Info("Migrating to version", zap.Uint("target_version", version))
	changed, err := m.run(fmt.Sprintf("to version %d", version), func() error { return m.migrate.Migrate(version) })
	if changed {
		m.logVersion("Migration to version completed")
	}
	return err
}

// Version returns the applied version, or 0 on a fresh database
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied without running it. Used to clear a dirty state.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and database handles
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	return errors.Join(sourceErr, dbErr)
}
