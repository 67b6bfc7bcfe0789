package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backend/migrations"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add receipts table", "add_receipts_table"},
		{"Add-Receipts-Table", "add_receipts_table"},
		{"ADD_RECEIPTS_TABLE", "add_receipts_table"},
		{"add__receipts__table", "add_receipts_table"},
		{"Add Stock 123", "add_stock_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add receipts table", "Receipts for the register")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_receipts_table.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_receipts_table.down.sql"), first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add_receipts_table")
	assert.Contains(t, string(up), "-- Description: Receipts for the register")

	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(Rollback)")

	second, err := CreateMigration(dir, "index sales", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	up, err = os.ReadFile(second.UpPath)
	require.NoError(t, err)
	assert.NotContains(t, string(up), "Description")
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000010_later.up.sql":    {},
		"000010_later.down.sql":  {},
		"000002_second.up.sql":   {},
		"000002_second.down.sql": {},
		"README.md":              {},
		"draft.up.sql":           {},
		"nested":                 {Mode: os.ModeDir},
	}

	list, err := ListMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint(2), list[0].Version)
	assert.Equal(t, "second", list[0].Name)
	assert.Equal(t, "000002_second.down.sql", list[0].DownPath)
	assert.Equal(t, uint(10), list[1].Version)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	list, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "absent")))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	list, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	for i, mf := range list {
		assert.Equal(t, uint(i+1), mf.Version, "versions must be contiguous")
		_, err := migrations.FS.Open(mf.DownPath)
		assert.NoError(t, err, "missing rollback for %s", mf.UpPath)
	}
}
