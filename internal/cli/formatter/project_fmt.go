package formatter

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// FormatProjectList renders the registry inside a bordered box. The active
// project is marked.
func FormatProjectList(projects domain.Registry, active int) string {
	if len(projects) == 0 {
		return Dim("No projects yet. Create one with `tt new`.") + "\n"
	}

	headers := []string{"", "ID", "NAME", "CATEGORY", "DESCRIPTION"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects.Sorted() {
		marker := ""
		if p.ID == active {
			marker = StyleGreen.Render("●")
		}
		category := p.Category
		if category == "" {
			category = Dim("--")
		}
		rows = append(rows, []string{
			marker,
			strconv.Itoa(p.ID),
			Bold(p.Name),
			StylePurple.Render(category),
			Dim(p.Description),
		})
	}

	return RenderBox("Projects", RenderAlignedTable(headers, rows, []Align{AlignLeft, AlignRight}))
}

// FormatProjectCreated confirms a new project.
func FormatProjectCreated(p domain.Project) string {
	return fmt.Sprintf("Created project %s\n", Bold(p.Label()))
}
