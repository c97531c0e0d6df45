package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/timetrack/internal/domain"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMalformedSheet is returned when stored events cannot be decoded.
	ErrMalformedSheet = errors.New("malformed timesheet")
)

// Sheet formats.
const (
	FormatSQLite = "sqlite"
	FormatJSON   = "json"
)

// SheetInfo describes where and how a sheet is stored.
type SheetInfo struct {
	Path   string
	Format string
	ID     string
	Events int
}

// UpdateFunc receives the current sheet and returns the sheet to persist.
// Returning an error aborts the update without writing.
type UpdateFunc func(domain.Sheet) (domain.Sheet, error)

// SheetRepo stores one timesheet. Absent storage loads as an empty sheet.
type SheetRepo interface {
	Load(ctx context.Context) (domain.Sheet, error)
	Update(ctx context.Context, fn UpdateFunc) error
	Describe(ctx context.Context) (SheetInfo, error)
	Close() error
}

// ProjectRepo stores the project registry.
type ProjectRepo interface {
	List(ctx context.Context) (domain.Registry, error)
	// Create registers p, allocating the next free id when p.ID is zero.
	Create(ctx context.Context, p domain.Project) (domain.Project, error)
}

// SettingsRepo stores which timesheet is in use.
type SettingsRepo interface {
	TimesheetPath(ctx context.Context) (string, error)
	SetTimesheetPath(ctx context.Context, path string) error
}
