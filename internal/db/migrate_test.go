package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesCollectionsTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, "collections").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "collections", name)
}

func TestMigrate_RejectsUnknownCollection(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO collections (name, body, updated_at) VALUES ('tanks', '[]', '2024-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := Open("oracle", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestOpenPostgres_RequiresDSN(t *testing.T) {
	_, err := OpenPostgres("")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	q := `UPDATE collections SET body = ?, updated_at = ? WHERE name = ? AND body <> '?'`
	assert.Equal(t, q, Rebind(DialectSQLite, q))
	assert.Equal(t,
		`UPDATE collections SET body = $1, updated_at = $2 WHERE name = $3 AND body <> '?'`,
		Rebind(DialectPostgres, q))
}

func TestOpenDB_FileConnectionPragmas(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "culture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(3)

	// Every pooled connection carries the pragmas, not just the first one.
	for i := 0; i < 3; i++ {
		conn, err := db.Conn(context.Background())
		require.NoError(t, err)
		defer conn.Close()

		var timeout int
		require.NoError(t, conn.QueryRowContext(context.Background(), "PRAGMA busy_timeout").Scan(&timeout))
		assert.Equal(t, int(BusyTimeout.Milliseconds()), timeout)

		var mode string
		require.NoError(t, conn.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode))
		assert.Equal(t, "wal", mode)
	}
}

func TestSQLiteDSN(t *testing.T) {
	dsn := SQLiteDSN("/var/lib/spirulina/culture.db")
	assert.Contains(t, dsn, "_txlock=immediate")
	assert.Contains(t, dsn, "busy_timeout%285000%29")
	assert.Contains(t, dsn, "journal_mode%28WAL%29")

	assert.NotContains(t, SQLiteDSN(":memory:"), "journal_mode")
}
