package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/report"
)

// ReportView is everything the week report renders.
type ReportView struct {
	Now      time.Time
	Tables   []report.Table
	Active   domain.Project
	Running  *report.Running
	Warnings []report.Warning
	Projects domain.Registry
}

// FormatReport renders one boxed table per week, oldest first, followed by
// the current project and any warnings.
func FormatReport(v ReportView) string {
	var b strings.Builder

	if len(v.Tables) == 0 {
		b.WriteString(Dim("No work recorded yet."))
		b.WriteString("\n")
	}
	for _, tbl := range v.Tables {
		b.WriteString(FormatWeek(tbl, v.Projects, v.Running))
		b.WriteString("\n")
	}

	b.WriteString(FormatCurrent(v.Active, v.Running))
	b.WriteString("\n")

	for _, w := range v.Warnings {
		b.WriteString(Warn(w.Describe(ProjectName(v.Projects, w.ProjectID))))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatWeek renders one transposed week with per-day totals and the week
// total. The running project's row is marked when the week holds the live
// session.
func FormatWeek(tbl report.Table, projects domain.Registry, running *report.Running) string {
	headers := []string{"Name", "ID", "Category"}
	headers = append(headers, report.DayNames[:]...)
	headers = append(headers, "Total")

	align := []Align{AlignLeft, AlignRight, AlignLeft}
	for range report.DayNames {
		align = append(align, AlignRight)
	}
	align = append(align, AlignRight)

	live := running != nil && containsTime(tbl, running.Since)

	rows := make([][]string, 0, len(tbl.Rows)+2)
	for _, r := range tbl.Rows {
		p, ok := projects.Lookup(r.ProjectID)
		name, category := "#"+strconv.Itoa(r.ProjectID), ""
		if ok {
			name, category = p.Name, p.Category
		}
		if live && r.ProjectID == running.ProjectID {
			name = StyleGreen.Render("● " + name)
		} else {
			name = Bold(name)
		}
		if category == "" {
			category = Dim("--")
		}

		row := []string{name, strconv.Itoa(r.ProjectID), category}
		for _, d := range r.Days {
			row = append(row, DurationCell(d))
		}
		row = append(row, FormatDuration(r.Total))
		rows = append(rows, row)
	}

	totals := []string{Bold("In total"), "", ""}
	for _, d := range tbl.DayTotals {
		totals = append(totals, DurationCell(d))
	}
	totals = append(totals, Bold(FormatDuration(tbl.Total)))
	rows = append(rows, nil, totals)

	content := RenderAlignedTable(headers, rows, align)
	content += "\n" + fmt.Sprintf("Total work: %s", Bold(FormatDuration(tbl.Total)))
	return RenderBox(fmt.Sprintf("Week %d, %d", tbl.Number, tbl.Year), content)
}

// FormatCurrent describes the active project and the live session, if any.
func FormatCurrent(active domain.Project, running *report.Running) string {
	line := fmt.Sprintf("Current project: %s", Bold(active.Label()))
	if running != nil {
		line += "  " + StyleGreen.Render(fmt.Sprintf("● running since %s (%s)", Clock(running.Since), FormatDuration(running.Elapsed)))
	}
	return line
}

// ProjectName returns the registered name for id, or "#id".
func ProjectName(projects domain.Registry, id int) string {
	if p, ok := projects.Lookup(id); ok {
		return p.Name
	}
	return "#" + strconv.Itoa(id)
}

func containsTime(tbl report.Table, t time.Time) bool {
	year, week := t.ISOWeek()
	return year == tbl.Year && week == tbl.Number
}
