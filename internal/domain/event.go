package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownEvent is returned when an Event value is not one of the four
// known kinds.
var ErrUnknownEvent = errors.New("unknown event kind")

type EventKind string

const (
	KindBegin  EventKind = "begin"
	KindEnd    EventKind = "end"
	KindPause  EventKind = "pause"
	KindSwitch EventKind = "switch"
)

// Event is one entry of a Sheet. The set of implementations is closed:
// Begin, End, Pause and Switch.
type Event interface {
	Kind() EventKind
	event()
}

// Begin opens a work session.
type Begin struct {
	At time.Time
}

// End closes the open work session.
type End struct {
	At time.Time
}

// Pause is a break excluded from the open session. It carries no timestamp.
type Pause struct {
	Length time.Duration
}

// Switch changes the active project without stopping the clock.
type Switch struct {
	At      time.Time
	Project ProjectRef
}

func (Begin) Kind() EventKind  { return KindBegin }
func (End) Kind() EventKind    { return KindEnd }
func (Pause) Kind() EventKind  { return KindPause }
func (Switch) Kind() EventKind { return KindSwitch }

func (Begin) event()  {}
func (End) event()    {}
func (Pause) event()  {}
func (Switch) event() {}

func (e Begin) String() string  { return fmt.Sprintf("begin at %s", e.At.Format(time.DateTime)) }
func (e End) String() string    { return fmt.Sprintf("end at %s", e.At.Format(time.DateTime)) }
func (e Pause) String() string  { return fmt.Sprintf("pause of %s", e.Length) }
func (e Switch) String() string { return fmt.Sprintf("switch to %s at %s", e.Project, e.At.Format(time.DateTime)) }

// Timestamp returns the event's own time. Pause events have none.
func Timestamp(e Event) (time.Time, bool) {
	switch ev := e.(type) {
	case Begin:
		return ev.At, true
	case End:
		return ev.At, true
	case Switch:
		return ev.At, true
	default:
		return time.Time{}, false
	}
}

// ProjectRef names a project either by its unique name or by its numeric
// internal id.
type ProjectRef struct {
	Name string
	ID   int
	ByID bool
}

// RefByName returns a name reference.
func RefByName(name string) ProjectRef {
	return ProjectRef{Name: name}
}

// RefByID returns an id reference.
func RefByID(id int) ProjectRef {
	return ProjectRef{ID: id, ByID: true}
}

// ParseProjectRef treats input that parses as a non-negative integer as an id
// reference and anything else as a name.
func ParseProjectRef(input string) (ProjectRef, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return ProjectRef{}, fmt.Errorf("project reference is empty")
	}
	if id, err := strconv.Atoi(input); err == nil && id >= 0 {
		return RefByID(id), nil
	}
	return RefByName(input), nil
}

func (r ProjectRef) String() string {
	if r.ByID {
		return fmt.Sprintf("#%d", r.ID)
	}
	return strconv.Quote(r.Name)
}
