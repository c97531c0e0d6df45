package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/timetrack/internal/db"
	"github.com/alexanderramin/timetrack/internal/domain"
)

// SQLiteEventRepo reads and rewrites the events table. It works on any
// DBTX so it can run inside a unit of work.
type SQLiteEventRepo struct {
	db db.DBTX
}

// NewSQLiteEventRepo creates a new SQLiteEventRepo.
func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: conn}
}

// List returns every event in position order.
func (r *SQLiteEventRepo) List(ctx context.Context) (domain.Sheet, error) {
	query := `SELECT position, kind, at, pause_ns, project_name, project_id
		FROM events ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

// Count returns the number of stored events.
func (r *SQLiteEventRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return n, nil
}

// ReplaceAll rewrites the table so it holds exactly sheet.
func (r *SQLiteEventRepo) ReplaceAll(ctx context.Context, sheet domain.Sheet) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("clearing events: %w", err)
	}
	query := `INSERT INTO events (position, kind, at, pause_ns, project_name, project_id)
		VALUES (?, ?, ?, ?, ?, ?)`
	for i, e := range sheet {
		row, err := encodeRow(e)
		if err != nil {
			return fmt.Errorf("event %d: %w", i+1, err)
		}
		if _, err := r.db.ExecContext(ctx, query,
			i, string(e.Kind()), row.at, row.pauseNS, row.projectName, row.projectID,
		); err != nil {
			return fmt.Errorf("inserting event %d: %w", i+1, err)
		}
	}
	return nil
}

// eventRow holds column values; nil means SQL NULL.
type eventRow struct {
	at          any
	pauseNS     any
	projectName any
	projectID   any
}

func encodeRow(e domain.Event) (eventRow, error) {
	switch ev := e.(type) {
	case domain.Begin:
		return eventRow{at: formatTime(ev.At)}, nil
	case domain.End:
		return eventRow{at: formatTime(ev.At)}, nil
	case domain.Pause:
		return eventRow{pauseNS: int64(ev.Length)}, nil
	case domain.Switch:
		row := eventRow{at: formatTime(ev.At)}
		if ev.Project.ByID {
			row.projectID = ev.Project.ID
		} else {
			row.projectName = ev.Project.Name
		}
		return row, nil
	default:
		return eventRow{}, fmt.Errorf("%w: %T", domain.ErrUnknownEvent, e)
	}
}

func (r *SQLiteEventRepo) scanEvents(rows *sql.Rows) (domain.Sheet, error) {
	var sheet domain.Sheet
	for rows.Next() {
		var (
			position    int
			kind        string
			at          sql.NullString
			pauseNS     sql.NullInt64
			projectName sql.NullString
			projectID   sql.NullInt64
		)
		if err := rows.Scan(&position, &kind, &at, &pauseNS, &projectName, &projectID); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e, err := decodeRow(domain.EventKind(kind), at, pauseNS, projectName, projectID)
		if err != nil {
			return nil, fmt.Errorf("event at position %d: %w", position, err)
		}
		sheet = append(sheet, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return sheet, nil
}

func decodeRow(kind domain.EventKind, at sql.NullString, pauseNS sql.NullInt64, projectName sql.NullString, projectID sql.NullInt64) (domain.Event, error) {
	if kind == domain.KindPause {
		if !pauseNS.Valid {
			return nil, fmt.Errorf("%w: pause without length", ErrMalformedSheet)
		}
		return domain.Pause{Length: time.Duration(pauseNS.Int64)}, nil
	}

	ts, err := parseTime(nullableString(at))
	if err != nil {
		return nil, err
	}
	switch kind {
	case domain.KindBegin:
		return domain.Begin{At: ts}, nil
	case domain.KindEnd:
		return domain.End{At: ts}, nil
	case domain.KindSwitch:
		if projectID.Valid {
			return domain.Switch{At: ts, Project: domain.RefByID(int(projectID.Int64))}, nil
		}
		return domain.Switch{At: ts, Project: domain.RefByName(nullableString(projectName))}, nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrMalformedSheet, kind)
	}
}
