package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SheetIDKey is the sheet_meta key holding the sheet's identity.
const SheetIDKey = "sheet_id"

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		position   INTEGER PRIMARY KEY,
		kind       TEXT NOT NULL CHECK(kind IN ('begin','end','pause','switch')),
		at         TEXT,
		pause_ns   INTEGER,
		project_name TEXT,
		project_id   INTEGER,
		CHECK((kind = 'pause') = (at IS NULL)),
		CHECK((kind = 'pause') = (pause_ns IS NOT NULL))
	)`,
	`CREATE TABLE IF NOT EXISTS sheet_meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

// Migrate creates the schema and stamps the sheet with an id. It is safe to
// run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := ensureSheetID(db); err != nil {
		return fmt.Errorf("stamping sheet id: %w", err)
	}
	return nil
}

func ensureSheetID(db *sql.DB) error {
	_, err := db.Exec(`INSERT OR IGNORE INTO sheet_meta (key, value) VALUES (?, ?)`,
		SheetIDKey, uuid.NewString())
	return err
}

// SheetID reads the identity stamped by Migrate.
func SheetID(ctx context.Context, db DBTX) (string, error) {
	var id string
	err := db.QueryRowContext(ctx, `SELECT value FROM sheet_meta WHERE key = ?`, SheetIDKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("sheet has no id")
	}
	if err != nil {
		return "", err
	}
	return id, nil
}
