package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/legality"
	"github.com/alexanderramin/timetrack/internal/report"
	"github.com/alexanderramin/timetrack/internal/repository"
	"go.uber.org/zap"
)

type timesheetService struct {
	sheets   repository.SheetRepo
	projects repository.ProjectRepo
	opts     options
}

func NewTimesheetService(sheets repository.SheetRepo, projects repository.ProjectRepo, opts ...Option) TimesheetService {
	return &timesheetService{sheets: sheets, projects: projects, opts: buildOptions(opts)}
}

func (s *timesheetService) Begin(ctx context.Context, offset time.Duration) (*Recorded, error) {
	return s.record(ctx, "begin", func(now time.Time) (domain.Event, *domain.Project, error) {
		return domain.Begin{At: legality.BeginAt(now, offset)}, nil, nil
	})
}

func (s *timesheetService) End(ctx context.Context, offset time.Duration) (*Recorded, error) {
	return s.record(ctx, "end", func(now time.Time) (domain.Event, *domain.Project, error) {
		return domain.End{At: legality.EndAt(now, offset)}, nil, nil
	})
}

func (s *timesheetService) Pause(ctx context.Context, length time.Duration) (*Recorded, error) {
	return s.record(ctx, "pause", func(time.Time) (domain.Event, *domain.Project, error) {
		return domain.Pause{Length: length}, nil, nil
	})
}

func (s *timesheetService) Switch(ctx context.Context, ref domain.ProjectRef) (*Recorded, error) {
	return s.record(ctx, "switch", func(now time.Time) (domain.Event, *domain.Project, error) {
		reg, err := s.projects.List(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("loading projects: %w", err)
		}
		ev := domain.Switch{At: now, Project: ref}
		p, err := legality.CheckSwitch(ev, reg)
		if err != nil {
			return nil, nil, err
		}
		// Store the id so a later rename cannot redirect history.
		ev.Project = domain.RefByID(p.ID)
		return ev, &p, nil
	})
}

// record builds the event, then validates and appends it inside one sheet
// update. A rejection leaves the sheet untouched.
func (s *timesheetService) record(ctx context.Context, name string, build func(now time.Time) (domain.Event, *domain.Project, error)) (rec *Recorded, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.opts.observer, name, startedAt, fields, &err)

	now := s.opts.now()
	ev, project, err := build(now)
	if err != nil {
		return nil, err
	}
	fields["event"] = fmt.Sprint(ev)

	err = s.sheets.Update(ctx, func(sheet domain.Sheet) (domain.Sheet, error) {
		if err := legality.Check(sheet, ev, switchResolver(project)); err != nil {
			return nil, err
		}
		return sheet.Append(ev), nil
	})
	if err != nil {
		return nil, err
	}
	return &Recorded{Event: ev, Project: project}, nil
}

// switchResolver answers for the one project a Switch was built against.
func switchResolver(p *domain.Project) domain.ProjectResolver {
	if p == nil {
		return domain.Registry{}
	}
	return domain.Registry{*p}
}

func (s *timesheetService) Undo(ctx context.Context) (removed domain.Event, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.opts.observer, "nevermind", startedAt, fields, &err)

	err = s.sheets.Update(ctx, func(sheet domain.Sheet) (domain.Sheet, error) {
		var rest domain.Sheet
		rest, removed = sheet.RemoveLast()
		return rest, nil
	})
	if err != nil {
		return nil, err
	}
	fields["removed"] = fmt.Sprint(removed)
	return removed, nil
}

func (s *timesheetService) Events(ctx context.Context) (domain.Sheet, error) {
	return s.sheets.Load(ctx)
}

func (s *timesheetService) Report(ctx context.Context, req ReportRequest) (rep *Report, err error) {
	startedAt := time.Now()
	fields := map[string]any{"weeks": req.Weeks}
	defer observe(ctx, s.opts.observer, "show", startedAt, fields, &err)

	sheet, err := s.sheets.Load(ctx)
	if err != nil {
		return nil, err
	}
	reg, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	now := s.opts.now()
	res, err := report.Aggregate(sheet, reg, now)
	if err != nil {
		return nil, err
	}

	weeks := res.Weeks
	if req.Weeks > 0 && len(weeks) > req.Weeks {
		weeks = weeks[len(weeks)-req.Weeks:]
	}
	tables := make([]report.Table, 0, len(weeks))
	for _, w := range weeks {
		tables = append(tables, report.Transpose(w))
	}

	active, ok := reg.Lookup(res.Active)
	if !ok {
		active = domain.Project{ID: res.Active, Name: fmt.Sprintf("#%d", res.Active)}
	}

	for _, w := range res.Warnings {
		s.opts.logger.Warn("irregular sheet",
			zap.Int("kind", int(w.Kind)),
			zap.Int("project_id", w.ProjectID),
			zap.Int("year", w.Year),
			zap.Int("week", w.Week),
			zap.String("weekday", report.DayNames[w.Weekday]),
		)
	}
	fields["events"] = sheet.Len()
	fields["warnings"] = len(res.Warnings)

	return &Report{
		Now:      now,
		Tables:   tables,
		Active:   active,
		Running:  res.Running,
		Warnings: res.Warnings,
		Projects: reg,
	}, nil
}
