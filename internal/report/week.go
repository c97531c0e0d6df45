package report

import (
	"fmt"
	"time"
)

// DayNames are the column labels, Monday first.
var DayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Weekday returns the Monday-based index (Monday=0 .. Sunday=6) of t.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Week is the day-major aggregate of one ISO week: weekday -> project id ->
// accumulated duration.
type Week struct {
	Year   int
	Number int
	Days   [7]map[int]time.Duration
}

// DayTotal sums every project's duration on one weekday.
func (w Week) DayTotal(day int) time.Duration {
	var total time.Duration
	for _, d := range w.Days[day] {
		total += d
	}
	return total
}

// Total sums the whole week.
func (w Week) Total() time.Duration {
	var total time.Duration
	for day := range w.Days {
		total += w.DayTotal(day)
	}
	return total
}

// Running describes a session that is still open at report time and began
// today. Elapsed is synthesized up to the report's "now" and exists only in
// the report.
type Running struct {
	ProjectID int
	Since     time.Time
	Elapsed   time.Duration
}

type WarningKind int

const (
	WarnUnfinishedDay WarningKind = iota
	WarnUnfinishedWeek
	WarnUnfinishedAtEnd
	WarnRestarted
	WarnPauseOverrun
)

// Warning is a non-fatal irregularity found while folding a sheet.
type Warning struct {
	Kind      WarningKind
	ProjectID int
	Year      int
	Week      int
	Weekday   int
}

// Describe renders the warning using the given project name.
func (w Warning) Describe(project string) string {
	day := DayNames[w.Weekday]
	switch w.Kind {
	case WarnUnfinishedDay:
		return fmt.Sprintf("work not finished on project %s last day (%s, week %d), ignored", project, day, w.Week)
	case WarnUnfinishedWeek:
		return fmt.Sprintf("work not finished on project %s last week (week %d), ignored", project, w.Week)
	case WarnUnfinishedAtEnd:
		return fmt.Sprintf("work not finished on project %s (%s, week %d), ignored", project, day, w.Week)
	case WarnRestarted:
		return fmt.Sprintf("session on project %s began again without an end (%s, week %d), earlier interval ignored", project, day, w.Week)
	case WarnPauseOverrun:
		return fmt.Sprintf("pauses exceed the session on project %s (%s, week %d), counted as zero", project, day, w.Week)
	default:
		return fmt.Sprintf("irregular work on project %s (%s, week %d)", project, day, w.Week)
	}
}

// Result is the output of Aggregate.
type Result struct {
	Weeks    []Week
	Active   int
	Running  *Running
	Warnings []Warning
}
