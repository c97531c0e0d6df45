package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ProjectResolver resolves a reference to a registered project. Implementations
// must be pure lookups.
type ProjectResolver interface {
	Resolve(ref ProjectRef) (Project, error)
}

// Registry is the list of known projects as loaded from configuration.
type Registry []Project

var _ ProjectResolver = Registry(nil)

// Resolve matches id references on ID and name references on Name
// (case-insensitive). Id 0 always resolves to NoProject.
func (r Registry) Resolve(ref ProjectRef) (Project, error) {
	if ref.ByID {
		if p, ok := r.Lookup(ref.ID); ok {
			return p, nil
		}
		return Project{}, fmt.Errorf("project %s: %w", ref, ErrUnknownProject)
	}
	for _, p := range r {
		if strings.EqualFold(p.Name, ref.Name) {
			return p, nil
		}
	}
	if strings.EqualFold(ref.Name, NoProject.Name) {
		return NoProject, nil
	}
	return Project{}, fmt.Errorf("project %s: %w", ref, ErrUnknownProject)
}

// Lookup finds a project by internal id.
func (r Registry) Lookup(id int) (Project, bool) {
	for _, p := range r {
		if p.ID == id {
			return p, true
		}
	}
	if id == NoProjectID {
		return NoProject, true
	}
	return Project{}, false
}

// NextID returns one more than the highest id in use.
func (r Registry) NextID() int {
	next := NoProjectID + 1
	for _, p := range r {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

// Sorted returns a copy ordered by ascending id.
func (r Registry) Sorted() Registry {
	out := make(Registry, len(r))
	copy(out, r)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CheckNew reports whether p can join the registry without colliding on
// name or id.
func (r Registry) CheckNew(p Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == NoProjectID {
		return fmt.Errorf("project id %d is reserved for %q", NoProjectID, NoProject.Name)
	}
	if strings.EqualFold(p.Name, NoProject.Name) {
		return fmt.Errorf("project name %q is reserved", NoProject.Name)
	}
	for _, existing := range r {
		if strings.EqualFold(existing.Name, p.Name) {
			return fmt.Errorf("project name %q is already used by #%d", p.Name, existing.ID)
		}
		if existing.ID == p.ID {
			return fmt.Errorf("project id %d is already used by %q", p.ID, existing.Name)
		}
	}
	return nil
}
