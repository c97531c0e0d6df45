// Package report folds a sheet into per-week, per-day, per-project durations
// and reshapes those into project-major tables.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// ErrIllegalOrdering is matched by errors for event sequences the fold
// cannot interpret.
var ErrIllegalOrdering = errors.New("illegal event ordering")

// OrderingError points at the offending event by its sheet position.
type OrderingError struct {
	Index  int
	Event  domain.Event
	Reason string
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("event %d (%s): %s", e.Index+1, e.Event, e.Reason)
}

func (e *OrderingError) Unwrap() error { return ErrIllegalOrdering }

type sessionState int

const (
	noSession sessionState = iota
	sessionOpen
)

type crossing int

const (
	firstEvent crossing = iota
	sameDay
	newDay
	newWeek
)

type bucket struct {
	elapsed time.Duration
	// start is shifted forward by every pause folded while open.
	start  time.Time
	opened time.Time
	open   bool
}

type weekAcc struct {
	year   int
	number int
	days   [7]map[int]*bucket
}

func (w *weekAcc) freeze() Week {
	out := Week{Year: w.year, Number: w.number}
	for day, buckets := range w.days {
		if buckets == nil {
			continue
		}
		out.Days[day] = make(map[int]time.Duration, len(buckets))
		for id, b := range buckets {
			out.Days[day][id] = b.elapsed
		}
	}
	return out
}

type folder struct {
	projects domain.ProjectResolver
	now      time.Time

	state    sessionState
	active   int
	week     *weekAcc
	weekday  int
	weeks    []Week
	warnings []Warning
}

// Aggregate folds sheet left to right into week aggregates. projects
// resolves Switch targets to their numeric id, which keys the buckets. now
// is only consulted for a session still open at the end of the sheet.
func Aggregate(sheet domain.Sheet, projects domain.ProjectResolver, now time.Time) (*Result, error) {
	f := &folder{projects: projects, now: now, active: domain.NoProjectID}
	for i, ev := range sheet {
		if err := f.apply(i, ev); err != nil {
			return nil, err
		}
	}
	return f.finish(), nil
}

func (f *folder) apply(i int, ev domain.Event) error {
	switch e := ev.(type) {
	case domain.Begin:
		f.begin(e.At)
		return nil
	case domain.End:
		return f.end(i, e)
	case domain.Pause:
		return f.pause(i, e)
	case domain.Switch:
		return f.switchTo(i, e)
	default:
		return fmt.Errorf("event %d: %T: %w", i+1, ev, domain.ErrUnknownEvent)
	}
}

func (f *folder) begin(t time.Time) {
	if f.state == sessionOpen {
		kind := WarnRestarted
		switch f.cross(t) {
		case newDay:
			kind = WarnUnfinishedDay
		case newWeek:
			kind = WarnUnfinishedWeek
		}
		f.warn(kind, f.active)
		f.bucket(f.active).open = false
		f.state = noSession
	}
	f.enter(t)
	f.open(t)
}

func (f *folder) end(i int, e domain.End) error {
	if f.state != sessionOpen {
		return &OrderingError{Index: i, Event: e, Reason: "no session is open"}
	}
	return f.close(i, e, e.At)
}

func (f *folder) pause(i int, e domain.Pause) error {
	if f.state != sessionOpen {
		return &OrderingError{Index: i, Event: e, Reason: "pause outside a session"}
	}
	b := f.bucket(f.active)
	b.start = b.start.Add(e.Length)
	return nil
}

func (f *folder) switchTo(i int, e domain.Switch) error {
	p, err := f.projects.Resolve(e.Project)
	if err != nil {
		return fmt.Errorf("event %d (%s): %w", i+1, e, err)
	}
	if p.ID == f.active {
		return nil
	}
	if f.state != sessionOpen {
		f.active = p.ID
		return nil
	}
	// A switch on a later day flushes like a Begin: the interval left open
	// on the old day is dropped, not stretched over midnight.
	switch c := f.cross(e.At); c {
	case newDay, newWeek:
		kind := WarnUnfinishedDay
		if c == newWeek {
			kind = WarnUnfinishedWeek
		}
		f.warn(kind, f.active)
		f.bucket(f.active).open = false
		f.state = noSession
	default:
		if err := f.close(i, e, e.At); err != nil {
			return err
		}
	}
	f.active = p.ID
	f.enter(e.At)
	f.open(e.At)
	return nil
}

// cross classifies t against the tracked week and weekday.
func (f *folder) cross(t time.Time) crossing {
	if f.week == nil {
		return firstEvent
	}
	year, week := t.ISOWeek()
	switch {
	case year != f.week.year || week != f.week.number:
		return newWeek
	case Weekday(t) != f.weekday:
		return newDay
	default:
		return sameDay
	}
}

// enter moves the accumulator to the week and weekday of t, flushing the
// current week when t lies in a later one.
func (f *folder) enter(t time.Time) {
	switch f.cross(t) {
	case sameDay:
		return
	case newWeek:
		f.weeks = append(f.weeks, f.week.freeze())
		fallthrough
	case firstEvent:
		year, week := t.ISOWeek()
		f.week = &weekAcc{year: year, number: week}
	}
	f.weekday = Weekday(t)
}

func (f *folder) open(t time.Time) {
	b := f.bucket(f.active)
	b.start, b.opened, b.open = t, t, true
	f.state = sessionOpen
}

func (f *folder) close(i int, ev domain.Event, t time.Time) error {
	b := f.bucket(f.active)
	if t.Before(b.opened) {
		return &OrderingError{
			Index:  i,
			Event:  ev,
			Reason: fmt.Sprintf("timestamp precedes the session start at %s", b.opened.Format(time.DateTime)),
		}
	}
	elapsed := t.Sub(b.start)
	if elapsed < 0 {
		f.warn(WarnPauseOverrun, f.active)
		elapsed = 0
	}
	b.elapsed += elapsed
	b.open = false
	f.state = noSession
	return nil
}

// bucket returns the active day's bucket for id, creating it on first use.
func (f *folder) bucket(id int) *bucket {
	day := f.week.days[f.weekday]
	if day == nil {
		day = make(map[int]*bucket)
		f.week.days[f.weekday] = day
	}
	b, ok := day[id]
	if !ok {
		b = &bucket{}
		day[id] = b
	}
	return b
}

func (f *folder) warn(kind WarningKind, project int) {
	f.warnings = append(f.warnings, Warning{
		Kind:      kind,
		ProjectID: project,
		Year:      f.week.year,
		Week:      f.week.number,
		Weekday:   f.weekday,
	})
}

func (f *folder) finish() *Result {
	res := &Result{Active: f.active}
	if f.week == nil {
		return res
	}

	if f.state == sessionOpen {
		b := f.bucket(f.active)
		if f.cross(f.now) == sameDay {
			elapsed := f.now.Sub(b.start)
			if elapsed < 0 {
				elapsed = 0
			}
			res.Running = &Running{ProjectID: f.active, Since: b.opened, Elapsed: elapsed}
		} else {
			f.warn(WarnUnfinishedAtEnd, f.active)
		}
	}

	last := f.week.freeze()
	if res.Running != nil {
		last.Days[f.weekday][f.active] += res.Running.Elapsed
	}
	res.Weeks = append(f.weeks, last)
	res.Warnings = f.warnings
	return res
}
