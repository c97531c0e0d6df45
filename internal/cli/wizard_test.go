package cli

import (
	"testing"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProjectName(t *testing.T) {
	validate := validateProjectName(testutil.NewTestRegistry())

	assert.NoError(t, validate("delta"))
	assert.Error(t, validate(""))
	assert.Error(t, validate("42"))
	assert.Error(t, validate("Alpha"), "names collide case-insensitively")
	assert.Error(t, validate("unassigned"))
}

func TestValidateProjectID(t *testing.T) {
	validate := validateProjectID(testutil.NewTestRegistry())

	assert.NoError(t, validate(""))
	assert.NoError(t, validate("9"))
	assert.Error(t, validate("0"))
	assert.Error(t, validate("-3"))
	assert.Error(t, validate("x"))
	assert.ErrorContains(t, validate("2"), "ProjectB")
}

func TestProjectDraft(t *testing.T) {
	p, err := projectDraft{Name: " delta ", ID: "7", Category: "dev "}.project()
	require.NoError(t, err)
	assert.Equal(t, domain.Project{ID: 7, Name: "delta", Category: "dev"}, p)

	p, err = projectDraft{Name: "delta"}.project()
	require.NoError(t, err)
	assert.Zero(t, p.ID)

	_, err = projectDraft{Name: "delta", ID: "seven"}.project()
	assert.Error(t, err)
}

func TestNewProjectForm_Builds(t *testing.T) {
	var d projectDraft
	assert.NotNil(t, newProjectForm(testutil.NewTestRegistry(), &d))
}
