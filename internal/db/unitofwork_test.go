package db_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	// Create a simple test table outside the migration set.
	_, err = database.Exec(`CREATE TABLE IF NOT EXISTS uow_test (id TEXT PRIMARY KEY, val TEXT)`)
	require.NoError(t, err)

	return db.NewSQLiteUnitOfWork(database)
}

func readVal(uow *db.SQLiteUnitOfWork, id string) (string, bool) {
	var val string
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		row := tx.QueryRowContext(ctx, `SELECT val FROM uow_test WHERE id = ?`, id)
		if err := row.Scan(&val); err != nil {
			return nil
		}
		found = true
		return nil
	})
	return val, found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO uow_test (id, val) VALUES (?, ?)`, "k1", "v1")
		return err
	})
	require.NoError(t, err)

	val, found := readVal(uow, "k1")
	assert.True(t, found, "row should exist after commit")
	assert.Equal(t, "v1", val)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO uow_test (id, val) VALUES (?, ?)`, "k2", "v2")
		if err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	_, found := readVal(uow, "k2")
	assert.False(t, found, "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestDB(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, `INSERT INTO uow_test (id, val) VALUES (?, ?)`, "k3", "v3")
			panic("boom")
		})
	})

	_, found := readVal(uow, "k3")
	assert.False(t, found, "row should not exist after panic rollback")
}

func TestWithinTx_HoldsWriteLockWhileReading(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.db")
	first, err := db.OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { first.Close() })
	second, err := db.OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	// Fail at once instead of waiting out the busy timeout.
	_, err = second.Exec("PRAGMA busy_timeout = 0")
	require.NoError(t, err)

	insert := `INSERT INTO sheet_meta (key, value) VALUES (?, ?)`
	err = db.NewSQLiteUnitOfWork(first).WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM sheet_meta`).Scan(&n); err != nil {
			return err
		}
		_, err := second.ExecContext(ctx, insert, "second-writer", "during")
		assert.Error(t, err, "a second writer must be locked out")
		return nil
	})
	require.NoError(t, err)

	_, err = second.Exec(insert, "second-writer", "after")
	assert.NoError(t, err)
}

func TestFailOnNthExec_RollsBackThroughImmediateTx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.db")
	database, err := db.OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	other, err := db.OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { other.Close() })
	_, err = other.Exec("PRAGMA busy_timeout = 0")
	require.NoError(t, err)

	injected := errors.New("injected")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}
	insert := `INSERT INTO sheet_meta (key, value) VALUES (?, ?)`

	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insert, "first", "1"); err != nil {
			return err
		}
		// The write lock is already held by this unit.
		_, lockErr := other.ExecContext(ctx, insert, "outside", "x")
		assert.Error(t, lockErr)

		_, err := tx.ExecContext(ctx, insert, "second", "2")
		return err
	})
	require.ErrorIs(t, err, injected)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM sheet_meta WHERE key IN ('first', 'second', 'outside')`).Scan(&n))
	assert.Zero(t, n, "the first write must be rolled back with the failed one")
}
