package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timetrack/internal/cli/formatter"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ttHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func ttHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// projectDraft holds the raw wizard answers.
type projectDraft struct {
	Name        string
	ID          string
	Category    string
	Description string
}

// newProjectForm collects a project. Name and id are checked against the
// registry as the user types.
func newProjectForm(existing domain.Registry, draft *projectDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Description("Unique, not purely numeric").
				Value(&draft.Name).
				Validate(validateProjectName(existing)),
			huh.NewInput().
				Title("Project ID").
				Description("Blank for the next free id").
				Placeholder(strconv.Itoa(existing.NextID())).
				Value(&draft.ID).
				Validate(validateProjectID(existing)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Category (optional)").
				Value(&draft.Category),
			huh.NewText().
				Title("Description (optional)").
				Lines(3).
				Value(&draft.Description),
		),
	).WithTheme(ttHuhTheme()).WithShowHelp(false)
}

func validateProjectName(existing domain.Registry) func(string) error {
	return func(s string) error {
		p := domain.Project{Name: strings.TrimSpace(s), ID: existing.NextID()}
		return existing.CheckNew(p)
	}
}

func validateProjectID(existing domain.Registry) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		id, err := strconv.Atoi(s)
		if err != nil || id <= 0 {
			return fmt.Errorf("id must be a positive whole number")
		}
		if p, ok := existing.Lookup(id); ok {
			return fmt.Errorf("id %d is already used by %q", id, p.Name)
		}
		return nil
	}
}

// project converts the answers once the form validated them.
func (d projectDraft) project() (domain.Project, error) {
	p := domain.Project{
		Name:        strings.TrimSpace(d.Name),
		Category:    strings.TrimSpace(d.Category),
		Description: strings.TrimSpace(d.Description),
	}
	if id := strings.TrimSpace(d.ID); id != "" {
		n, err := strconv.Atoi(id)
		if err != nil {
			return domain.Project{}, fmt.Errorf("invalid project id %q", id)
		}
		p.ID = n
	}
	return p, nil
}
