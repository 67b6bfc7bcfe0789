package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/infrastructure/config"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

type queryStartKey struct{}

// DBTracing adds a span per GORM statement through otelgorm and annotates
// spans with row counts, the table and a slow-query flag.
type DBTracing struct {
	dbSystem      string
	logFullSQL    bool
	slowThreshold time.Duration
	logger        *zap.Logger
}

// NewDBTracing creates database tracing from the telemetry configuration
func NewDBTracing(cfg config.TelemetryConfig, dbSystem string, logger *zap.Logger) *DBTracing {
	thresh := cfg.DBSlowQueryThresh
	if thresh <= 0 {
		thresh = defaultSlowQueryThreshold
	}
	return &DBTracing{dbSystem: dbSystem, logFullSQL: cfg.DBLogFullSQL, slowThreshold: thresh, logger: logger}
}

// Register installs otelgorm and the annotation callbacks on db
func (t *DBTracing) Register(db *gorm.DB) error {
	// registered ahead of otelgorm so the after hooks see a live span
	cb := db.Callback()
	err := errors.Join(
		cb.Create().Before("gorm:create").Register("stockroom:before_create", t.before),
		cb.Create().After("gorm:create").Before("otel:after:create").Register("stockroom:after_create", t.after),
		cb.Query().Before("gorm:query").Register("stockroom:before_query", t.before),
		cb.Query().After("gorm:query").Before("otel:after:query").Register("stockroom:after_query", t.after),
		cb.Update().Before("gorm:update").Register("stockroom:before_update", t.before),
		cb.Update().After("gorm:update").Before("otel:after:update").Register("stockroom:after_update", t.after),
		cb.Delete().Before("gorm:delete").Register("stockroom:before_delete", t.before),
		cb.Delete().After("gorm:delete").Before("otel:after:delete").Register("stockroom:after_delete", t.after),
		cb.Row().Before("gorm:row").Register("stockroom:before_row", t.before),
		cb.Row().After("gorm:row").Before("otel:after:row").Register("stockroom:after_row", t.after),
		cb.Raw().Before("gorm:raw").Register("stockroom:before_raw", t.before),
		cb.Raw().After("gorm:raw").Before("otel:after:raw").Register("stockroom:after_raw", t.after),
	)
	if err != nil {
		return err
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(t.dbSystem)}
	if !t.logFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	t.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", t.logFullSQL),
		zap.Duration("slow_query_threshold", t.slowThreshold))
	return nil
}

func (t *DBTracing) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func (t *DBTracing) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}
	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > t.slowThreshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
