package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/inventory"
)

func TestGormIdentifierRepository_MaxBarcodeQuery(t *testing.T) {
	const maxQuery = `SELECT MAX\(barcode\) FROM "identifiers" WHERE length\(barcode\) = \$1 AND barcode ~ '\^\[0-9\]\+\$'`

	newRepo := func(t *testing.T) (*GormIdentifierRepository, sqlmock.Sqlmock) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = mockDB.Close() })

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
			SkipDefaultTransaction: true,
		})
		require.NoError(t, err)
		return NewGormIdentifierRepository(gormDB), mock
	}

	t.Run("aggregates in the database", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(maxQuery).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow("1000015"))

		max, err := repo.MaxBarcode(context.Background(), inventory.ItemClass)
		require.NoError(t, err)
		assert.Equal(t, "1000015", max)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty class", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(maxQuery).
			WithArgs(4).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

		max, err := repo.MaxBarcode(context.Background(), inventory.LocationClass)
		require.NoError(t, err)
		assert.Equal(t, "", max)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
