package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/report"
	"github.com/alexanderramin/timetrack/internal/repository"
)

// Recorded is the outcome of an accepted mutation. Project is set for a
// Switch and holds the resolved target.
type Recorded struct {
	Event   domain.Event
	Project *domain.Project
}

// ReportRequest selects how much history a report covers. Weeks <= 0 means
// every week in the sheet.
type ReportRequest struct {
	Weeks int
}

// Report is the rendered-ready view of a sheet at Now.
type Report struct {
	Now      time.Time
	Tables   []report.Table
	Active   domain.Project
	Running  *report.Running
	Warnings []report.Warning
	Projects domain.Registry
}

type TimesheetService interface {
	Begin(ctx context.Context, offset time.Duration) (*Recorded, error)
	End(ctx context.Context, offset time.Duration) (*Recorded, error)
	Pause(ctx context.Context, length time.Duration) (*Recorded, error)
	Switch(ctx context.Context, ref domain.ProjectRef) (*Recorded, error)
	// Undo removes the last event. It returns a nil event when the sheet is
	// already empty.
	Undo(ctx context.Context) (domain.Event, error)
	Events(ctx context.Context) (domain.Sheet, error)
	Report(ctx context.Context, req ReportRequest) (*Report, error)
}

type ProjectService interface {
	List(ctx context.Context) (domain.Registry, error)
	Create(ctx context.Context, p domain.Project) (domain.Project, error)
	Resolve(ctx context.Context, ref domain.ProjectRef) (domain.Project, error)
}

type SettingsService interface {
	Timesheet(ctx context.Context) (repository.SheetInfo, error)
	UseTimesheet(ctx context.Context, path string) (repository.SheetInfo, error)
}
