package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateAndList(t *testing.T) {
	repo := &memProjects{}
	svc := NewProjectService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Project{Name: "  website ", Category: "client"})
	require.NoError(t, err)
	assert.Equal(t, domain.Project{ID: 1, Name: "website", Category: "client"}, created)

	_, err = svc.Create(ctx, testutil.NewTestProject(7, "internal"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, testutil.NewTestProject(3, "hiring"))
	require.NoError(t, err)

	reg, err := svc.List(ctx)
	require.NoError(t, err)
	ids := make([]int, 0, len(reg))
	for _, p := range reg {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 3, 7}, ids)
}

func TestProjectService_CreateRejectsInvalid(t *testing.T) {
	svc := NewProjectService(&memProjects{reg: testutil.NewTestRegistry()})
	ctx := context.Background()

	tests := []struct {
		name    string
		project domain.Project
	}{
		{"empty name", domain.Project{Name: "   "}},
		{"numeric name", domain.Project{Name: "12"}},
		{"negative id", domain.Project{ID: -1, Name: "neg"}},
		{"duplicate name", domain.Project{Name: "Alpha"}},
		{"duplicate id", domain.Project{ID: 2, Name: "fresh"}},
		{"reserved name", domain.Project{Name: "unassigned"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.project)
			assert.Error(t, err)
		})
	}
}

func TestProjectService_Resolve(t *testing.T) {
	svc := NewProjectService(&memProjects{reg: testutil.NewTestRegistry()})
	ctx := context.Background()

	p, err := svc.Resolve(ctx, domain.RefByID(2))
	require.NoError(t, err)
	assert.Equal(t, "ProjectB", p.Name)

	p, err = svc.Resolve(ctx, domain.RefByName("GAMMA"))
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)

	_, err = svc.Resolve(ctx, domain.RefByID(99))
	assert.ErrorIs(t, err, domain.ErrUnknownProject)
}
