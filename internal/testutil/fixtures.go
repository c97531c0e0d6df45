package testutil

import (
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// Week24 is Monday 2025-06-09 00:00 local time, ISO week 24 of 2025.
var Week24 = time.Date(2025, time.June, 9, 0, 0, 0, 0, time.Local)

// At returns a local timestamp in week 24: weekday 0 is Monday.
func At(weekday, hour, minute int) time.Time {
	return Week24.AddDate(0, 0, weekday).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Project options
type ProjectOption func(*domain.Project)

func WithCategory(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Category = c
	}
}

func WithDescription(d string) ProjectOption {
	return func(p *domain.Project) {
		p.Description = d
	}
}

func NewTestProject(id int, name string, opts ...ProjectOption) domain.Project {
	p := domain.Project{ID: id, Name: name}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NewTestRegistry returns alpha (#1), ProjectB (#2) and gamma (#3).
func NewTestRegistry() domain.Registry {
	return domain.Registry{
		NewTestProject(1, "alpha", WithCategory("dev")),
		NewTestProject(2, "ProjectB", WithCategory("ops")),
		NewTestProject(3, "gamma", WithDescription("Side project")),
	}
}

// NewTestSheet builds a Sheet from events.
func NewTestSheet(events ...domain.Event) domain.Sheet {
	var s domain.Sheet
	for _, e := range events {
		s = s.Append(e)
	}
	return s
}

// SwitchTo is a name-referenced Switch at t.
func SwitchTo(t time.Time, name string) domain.Switch {
	return domain.Switch{At: t, Project: domain.RefByName(name)}
}
