package persistence

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/shared"
)

// pgUniqueViolation is the SQLSTATE of unique_violation
const pgUniqueViolation = "23505"

// sqliteUniquePrefix starts the message SQLite returns for unique violations
const sqliteUniquePrefix = "UNIQUE constraint failed: "

// constraintColumns maps named constraints to the payload column they protect
var constraintColumns = map[string]string{
	"identifiers_pkey":              "barcode",
	"locations_pkey":                "barcode",
	"item_templates_pkey":           "barcode",
	"stock_books_pkey":              "itm_id",
	"prices_pkey":                   "itm_id",
	"invoices_pkey":                 "id",
	"receipts_pkey":                 "id",
	"uq_locations_name":             "name",
	"uq_suppliers_name":             "name",
	"uq_item_templates_description": "description",
	"uq_purchases_invoice_item":     "item_id",
	"uq_users_username":             "username",
}

// translateError maps driver errors onto domain errors
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &shared.ConflictError{Column: constraintColumns[pgErr.ConstraintName], Err: err}
	}

	msg := err.Error()
	if i := strings.Index(msg, sqliteUniquePrefix); i >= 0 {
		return &shared.ConflictError{Column: sqliteConflictColumn(msg[i+len(sqliteUniquePrefix):]), Err: err}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &shared.ConflictError{Err: err}
	}
	return err
}

// sqliteConflictColumn extracts the last column of "table.a, table.b"
func sqliteConflictColumn(cols string) string {
	parts := strings.Split(cols, ",")
	_, col, _ := strings.Cut(strings.TrimSpace(parts[len(parts)-1]), ".")
	if col == "identifier_id" {
		return "barcode"
	}
	return col
}

// IsUniqueViolation reports whether err is a raw driver error for a unique
// index. The GORM logger uses it to keep expected conflicts out of error logs.
func IsUniqueViolation(err error) bool {
	var conflict *shared.ConflictError
	return errors.As(translateError(err), &conflict)
}
