package report

import (
	"sort"
	"time"
)

// Row is one project's week, Monday first.
type Row struct {
	ProjectID int
	Days      [7]time.Duration
	Total     time.Duration
}

// Table is the project-major view of a Week with per-day and grand totals.
type Table struct {
	Year      int
	Number    int
	Rows      []Row
	DayTotals [7]time.Duration
	Total     time.Duration
}

// Transpose regroups a Week by project. Durations are copied, never
// recomputed. Rows are ordered by ascending project id.
func Transpose(w Week) Table {
	t := Table{Year: w.Year, Number: w.Number}
	index := make(map[int]int)

	for day, projects := range w.Days {
		for id, d := range projects {
			pos, ok := index[id]
			if !ok {
				pos = len(t.Rows)
				index[id] = pos
				t.Rows = append(t.Rows, Row{ProjectID: id})
			}
			t.Rows[pos].Days[day] = d
			t.Rows[pos].Total += d
			t.DayTotals[day] += d
			t.Total += d
		}
	}

	sort.Slice(t.Rows, func(i, j int) bool { return t.Rows[i].ProjectID < t.Rows[j].ProjectID })
	return t
}

// Row returns the row for a project id.
func (t Table) Row(projectID int) (Row, bool) {
	for _, r := range t.Rows {
		if r.ProjectID == projectID {
			return r, true
		}
	}
	return Row{}, false
}
