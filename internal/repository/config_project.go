package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/timetrack/internal/config"
	"github.com/alexanderramin/timetrack/internal/domain"
)

// ConfigProjectRepo keeps the project registry in the config file.
type ConfigProjectRepo struct {
	store *config.Store
	mu    sync.Mutex
}

// NewConfigProjectRepo creates a ConfigProjectRepo over store.
func NewConfigProjectRepo(store *config.Store) *ConfigProjectRepo {
	return &ConfigProjectRepo{store: store}
}

func (r *ConfigProjectRepo) List(ctx context.Context) (domain.Registry, error) {
	cfg, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return cfg.Registry(), nil
}

func (r *ConfigProjectRepo) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, err := r.store.Load()
	if err != nil {
		return domain.Project{}, err
	}
	reg := cfg.Registry()
	if p.ID == domain.NoProjectID {
		p.ID = reg.NextID()
	}
	if err := reg.CheckNew(p); err != nil {
		return domain.Project{}, err
	}
	cfg.AddProject(p)
	if err := r.store.Save(cfg); err != nil {
		return domain.Project{}, fmt.Errorf("saving project %s: %w", p.Name, err)
	}
	return p, nil
}

// ConfigSettingsRepo keeps the active timesheet path in the config file.
type ConfigSettingsRepo struct {
	store *config.Store
}

// NewConfigSettingsRepo creates a ConfigSettingsRepo over store.
func NewConfigSettingsRepo(store *config.Store) *ConfigSettingsRepo {
	return &ConfigSettingsRepo{store: store}
}

func (r *ConfigSettingsRepo) TimesheetPath(ctx context.Context) (string, error) {
	cfg, err := r.store.Load()
	if err != nil {
		return "", err
	}
	return cfg.Timesheet, nil
}

func (r *ConfigSettingsRepo) SetTimesheetPath(ctx context.Context, path string) error {
	cfg, err := r.store.Load()
	if err != nil {
		return err
	}
	cfg.Timesheet = path
	return r.store.Save(cfg)
}
