package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnknownProject is returned when a ProjectRef matches no registered
// project.
var ErrUnknownProject = errors.New("unknown project")

// NoProjectID keys work recorded before any Switch.
const NoProjectID = 0

// NoProject is the sentinel active project of a sheet that never switched.
var NoProject = Project{
	ID:          NoProjectID,
	Name:        "unassigned",
	Description: "Work not attributed to a registered project.",
}

var numericName = regexp.MustCompile(`^[0-9]+$`)

type Project struct {
	ID          int
	Name        string
	Category    string
	Description string
}

// Validate checks the identity fields. Purely numeric names are refused
// because they would be read back as id references.
func (p *Project) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("project name is required")
	}
	if numericName.MatchString(name) {
		return fmt.Errorf("project name %q must not be purely numeric (it would be read as an id)", name)
	}
	if p.ID < 0 {
		return fmt.Errorf("project id %d must not be negative", p.ID)
	}
	return nil
}

// Label returns "name (#id)".
func (p Project) Label() string {
	return fmt.Sprintf("%s (#%d)", p.Name, p.ID)
}
