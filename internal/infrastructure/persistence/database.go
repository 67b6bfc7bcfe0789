package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stockroom/backend/internal/infrastructure/config"
)

// Database wraps the GORM handle shared by the inventory store and the user repository
type Database struct {
	DB *gorm.DB
}

// Option adjusts how Open connects
type Option func(*openOptions)

type openOptions struct {
	dialector   gorm.Dialector
	gormLogger  logger.Interface
	prepareStmt bool
	ping        bool
}

// WithGormLogger reports queries through l instead of GORM's silent default
func WithGormLogger(l logger.Interface) Option {
	return func(o *openOptions) {
		o.gormLogger = l
	}
}

// WithDialector replaces the Postgres dialector built from the config
func WithDialector(d gorm.Dialector) Option {
	return func(o *openOptions) {
		o.dialector = d
	}
}

// WithPreparedStatements toggles GORM's prepared statement cache
func WithPreparedStatements(enabled bool) Option {
	return func(o *openOptions) {
		o.prepareStmt = enabled
	}
}

// WithoutPing skips the connectivity check on open
func WithoutPing() Option {
	return func(o *openOptions) {
		o.ping = false
	}
}

// Open connects to the stockroom database and sizes the pool from cfg
func Open(cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	o := openOptions{
		gormLogger:  logger.Default.LogMode(logger.Silent),
		prepareStmt: true,
		ping:        true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.dialector == nil {
		o.dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(o.dialector, &gorm.Config{
		Logger:                 o.gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            o.prepareStmt,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	d := &Database{DB: db}
	if o.ping {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}
	return d, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping reports whether the database answers; used by the health check
func (d *Database) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return d.PingContext(ctx)
}

// PingContext checks the connection within ctx
func (d *Database) PingContext(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// InventoryStore returns the transactional inventory store over this connection
func (d *Database) InventoryStore() *GormInventoryStore {
	return NewGormInventoryStore(d.DB)
}

// Users returns the user repository over this connection
func (d *Database) Users() *GormUserRepository {
	return NewGormUserRepository(d.DB)
}
