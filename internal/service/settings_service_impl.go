package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alexanderramin/timetrack/internal/config"
	"github.com/alexanderramin/timetrack/internal/repository"
)

// SheetOpener opens the store for a timesheet path.
type SheetOpener func(path string) (repository.SheetRepo, error)

type settingsService struct {
	settings repository.SettingsRepo
	current  repository.SheetRepo
	open     SheetOpener
	opts     options
}

// NewSettingsService reports on the sheet currently in use and switches
// the configured sheet for later invocations.
func NewSettingsService(settings repository.SettingsRepo, current repository.SheetRepo, open SheetOpener, opts ...Option) SettingsService {
	if open == nil {
		open = repository.OpenSheetRepo
	}
	return &settingsService{settings: settings, current: current, open: open, opts: buildOptions(opts)}
}

func (s *settingsService) Timesheet(ctx context.Context) (repository.SheetInfo, error) {
	return s.current.Describe(ctx)
}

// UseTimesheet checks that path holds a readable sheet (or nothing yet)
// before recording it in the config.
func (s *settingsService) UseTimesheet(ctx context.Context, path string) (info repository.SheetInfo, err error) {
	startedAt := time.Now()
	fields := map[string]any{"path": path}
	defer observe(ctx, s.opts.observer, "sheet", startedAt, fields, &err)

	path, err = filepath.Abs(config.ExpandHome(path))
	if err != nil {
		return repository.SheetInfo{}, fmt.Errorf("resolving %s: %w", path, err)
	}

	repo, err := s.open(path)
	if err != nil {
		return repository.SheetInfo{}, err
	}
	defer repo.Close()

	if _, err = repo.Load(ctx); err != nil {
		return repository.SheetInfo{}, err
	}
	info, err = repo.Describe(ctx)
	if err != nil {
		return repository.SheetInfo{}, err
	}
	if err = s.settings.SetTimesheetPath(ctx, path); err != nil {
		return repository.SheetInfo{}, fmt.Errorf("saving config: %w", err)
	}
	fields["format"] = info.Format
	return info, nil
}
