package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/shared"
)

func TestTranslateError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translateError(nil))
	})

	t.Run("record not found", func(t *testing.T) {
		assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), shared.ErrNotFound)
	})

	t.Run("postgres unique violation maps the constraint", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_locations_name"}
		err := translateError(fmt.Errorf("insert: %w", pgErr))

		var conflict *shared.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "name", conflict.Column)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.ErrorIs(t, err, pgErr)
	})

	t.Run("other postgres errors pass through", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503"}
		assert.Same(t, pgErr, translateError(pgErr))
	})

	t.Run("sqlite unique violation", func(t *testing.T) {
		err := translateError(errors.New("UNIQUE constraint failed: purchases.invoice_id, purchases.item_id"))
		var conflict *shared.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "item_id", conflict.Column)

		err = translateError(errors.New("UNIQUE constraint failed: locations.identifier_id"))
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "barcode", conflict.Column)
	})

	t.Run("translated duplicate key", func(t *testing.T) {
		assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey), shared.ErrAlreadyExists)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "uq_locations_name"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: locations.name")))
	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}
