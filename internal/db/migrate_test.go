package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"events", "sheet_meta"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_SheetIDStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.db")

	first, err := OpenDB(path)
	require.NoError(t, err)
	id, err := SheetID(context.Background(), first)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenDB(path)
	require.NoError(t, err)
	defer second.Close()
	again, err := SheetID(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, id, again, "reopening must not restamp the sheet")
}

func TestEventsTable_RejectsUnknownKind(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO events (position, kind, at) VALUES (0, 'lunch', '2025-06-09T09:00:00Z')`)
	require.Error(t, err)
}

func TestEventsTable_PauseShape(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO events (position, kind, pause_ns) VALUES (0, 'pause', 60)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO events (position, kind, at, pause_ns) VALUES (1, 'pause', '2025-06-09T09:00:00Z', 60)`)
	assert.Error(t, err, "pause rows carry no timestamp")

	_, err = db.Exec(`INSERT INTO events (position, kind) VALUES (2, 'begin')`)
	assert.Error(t, err, "begin rows need a timestamp")
}
