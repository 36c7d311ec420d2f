package migrate

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/greatkart/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, ValidateFS(Migrations, EmbeddedDir))
}

func TestEmbeddedMigrationsApplyOnSQLite(t *testing.T) {
	sqlDB := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, RunEmbedded(ctx, sqlDB, "sqlite3", "up"))

	for _, table := range []string{"products", "carts", "cart_items"} {
		var name string
		err := sqlDB.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	_, err := sqlDB.ExecContext(ctx, `INSERT INTO carts (cart_id) VALUES ('abc')`)
	require.NoError(t, err)
	_, err = sqlDB.ExecContext(ctx, `INSERT INTO products (id, name, slug, price) VALUES ('p1', 'Shirt', 'shirt', 10.00)`)
	require.NoError(t, err)
	_, err = sqlDB.ExecContext(ctx, `INSERT INTO cart_items (id, cart_id, product_id, quantity) VALUES ('i1', 'abc', 'p1', 0)`)
	assert.Error(t, err, "quantity below one must be rejected")

	require.NoError(t, RunEmbedded(ctx, sqlDB, "sqlite3", "down"))
	var name string
	err = sqlDB.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name = 'cart_items'").Scan(&name)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRunRequiresDB(t *testing.T) {
	assert.Error(t, Run(context.Background(), nil, "postgres", DefaultDir, "up"))
}

func TestDialectFor(t *testing.T) {
	assert.Equal(t, "sqlite3", DialectFor(config.DBConfig{Driver: config.DriverSQLite}))
	assert.Equal(t, "postgres", DialectFor(config.DBConfig{Driver: config.DriverPostgres}))
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	path, err := CreateSQLMigration(dir, "Add Cart Notes!", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20250304050607_add_cart_notes.sql"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "-- +goose Up"))
	assert.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "Add Cart Notes!", now)
	assert.Error(t, err, "duplicate file must fail")

	_, err = CreateSQLMigration(dir, "!!!", now)
	assert.Error(t, err)
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_bad.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	assert.Error(t, ValidateDir(dir))
}

func TestValidateDirRejectsMissingDown(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250101000000_only_up.sql"), []byte("-- +goose Up\n"), 0o644))
	assert.Error(t, ValidateDir(dir))
}
