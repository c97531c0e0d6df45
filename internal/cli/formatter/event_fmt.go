package formatter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// FormatEventLog renders the raw sheet, one row per event in log order.
func FormatEventLog(sheet domain.Sheet, projects domain.Registry, now time.Time) string {
	if len(sheet) == 0 {
		return Dim("The timesheet is empty.") + "\n"
	}

	headers := []string{"#", "EVENT", "DAY", "TIME", "DETAIL"}
	rows := make([][]string, 0, len(sheet))
	for i, e := range sheet {
		day, clock := Dim("--"), Dim("--")
		if ts, ok := domain.Timestamp(e); ok {
			day, clock = HumanDateFrom(ts, now), Clock(ts)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			KindBadge(e.Kind()),
			day,
			clock,
			eventDetail(e, projects),
		})
	}
	return RenderBox("Timesheet", RenderAlignedTable(headers, rows, []Align{AlignRight}))
}

func eventDetail(e domain.Event, projects domain.Registry) string {
	switch ev := e.(type) {
	case domain.Pause:
		return FormatDuration(ev.Length)
	case domain.Switch:
		if p, err := projects.Resolve(ev.Project); err == nil {
			return p.Label()
		}
		return StyleRed.Render(ev.Project.String() + " (unknown)")
	default:
		return ""
	}
}

// FormatRecorded confirms an accepted event.
func FormatRecorded(e domain.Event, project *domain.Project) string {
	switch ev := e.(type) {
	case domain.Begin:
		return fmt.Sprintf("%s work at %s\n", KindBadge(ev.Kind()), Bold(Clock(ev.At)))
	case domain.End:
		return fmt.Sprintf("%s work at %s\n", KindBadge(ev.Kind()), Bold(Clock(ev.At)))
	case domain.Pause:
		return fmt.Sprintf("%s of %s recorded\n", KindBadge(ev.Kind()), Bold(FormatDuration(ev.Length)))
	case domain.Switch:
		target := ev.Project.String()
		if project != nil {
			target = project.Label()
		}
		return fmt.Sprintf("%s to %s at %s\n", KindBadge(ev.Kind()), Bold(target), Bold(Clock(ev.At)))
	default:
		return fmt.Sprintf("Recorded %v\n", e)
	}
}

// FormatRemoved confirms an undo.
func FormatRemoved(e domain.Event) string {
	if e == nil {
		return Dim("Nothing to remove, the timesheet is empty.") + "\n"
	}
	return fmt.Sprintf("Removed %s\n", Bold(fmt.Sprint(e)))
}
