package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	opts     options
}

func NewProjectService(projects repository.ProjectRepo, opts ...Option) ProjectService {
	return &projectService{projects: projects, opts: buildOptions(opts)}
}

func (s *projectService) List(ctx context.Context) (domain.Registry, error) {
	reg, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	return reg.Sorted(), nil
}

func (s *projectService) Create(ctx context.Context, p domain.Project) (created domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"name": p.Name}
	defer observe(ctx, s.opts.observer, "new-project", startedAt, fields, &err)

	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Description = strings.TrimSpace(p.Description)
	if err := p.Validate(); err != nil {
		return domain.Project{}, err
	}

	created, err = s.projects.Create(ctx, p)
	if err != nil {
		return domain.Project{}, fmt.Errorf("creating project %q: %w", p.Name, err)
	}
	fields["id"] = created.ID
	return created, nil
}

func (s *projectService) Resolve(ctx context.Context, ref domain.ProjectRef) (domain.Project, error) {
	reg, err := s.projects.List(ctx)
	if err != nil {
		return domain.Project{}, err
	}
	return reg.Resolve(ref)
}
