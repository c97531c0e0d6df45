package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/domain"
)

// SQLiteSheetStore keeps a timesheet in a SQLite database file.
type SQLiteSheetStore struct {
	path string
	db   *sql.DB
	uow  db.UnitOfWork
}

// OpenSQLiteSheetStore opens (creating if needed) the database at path.
func OpenSQLiteSheetStore(path string) (*SQLiteSheetStore, error) {
	conn, err := db.OpenDB(path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteSheetStore(path, conn, db.NewSQLiteUnitOfWork(conn)), nil
}

// NewSQLiteSheetStore wraps an already migrated database. uow controls the
// transaction used by Update.
func NewSQLiteSheetStore(path string, conn *sql.DB, uow db.UnitOfWork) *SQLiteSheetStore {
	return &SQLiteSheetStore{path: path, db: conn, uow: uow}
}

func (s *SQLiteSheetStore) Load(ctx context.Context) (domain.Sheet, error) {
	return NewSQLiteEventRepo(s.db).List(ctx)
}

// Update runs the whole read-modify-write in one transaction so a
// concurrent writer cannot slip in between the read and the rewrite.
func (s *SQLiteSheetStore) Update(ctx context.Context, fn UpdateFunc) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		events := NewSQLiteEventRepo(tx)
		current, err := events.List(ctx)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		return events.ReplaceAll(ctx, next)
	})
}

func (s *SQLiteSheetStore) Describe(ctx context.Context) (SheetInfo, error) {
	id, err := db.SheetID(ctx, s.db)
	if err != nil {
		return SheetInfo{}, fmt.Errorf("reading sheet id: %w", err)
	}
	n, err := NewSQLiteEventRepo(s.db).Count(ctx)
	if err != nil {
		return SheetInfo{}, err
	}
	return SheetInfo{Path: s.path, Format: FormatSQLite, ID: id, Events: n}, nil
}

func (s *SQLiteSheetStore) Close() error {
	return s.db.Close()
}
