// Package legality decides whether an event may be appended to a sheet.
//
// State is recomputed from the sheet on every check by scanning backwards
// from its end, so a log edited outside the tool is judged as it stands.
package legality

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// ErrIllegalTransition is matched by every rejection of a Begin, End or
// Pause.
var ErrIllegalTransition = errors.New("illegal state transition")

type State int

const (
	StateUndetermined State = iota
	StateBegun
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateBegun:
		return "begun"
	case StateEnded:
		return "ended"
	default:
		return "undetermined"
	}
}

// IllegalEventError describes a rejected event and the state it was
// rejected in.
type IllegalEventError struct {
	Event  domain.Event
	State  State
	Reason string
}

func (e *IllegalEventError) Error() string {
	return fmt.Sprintf("rejected %s: %s (sheet state: %s)", e.Event, e.Reason, e.State)
}

func (e *IllegalEventError) Unwrap() error { return ErrIllegalTransition }

// StateAt returns the state set by the most recent Begin or End at or before
// at. Pause and Switch do not determine state.
func StateAt(sheet domain.Sheet, at time.Time) State {
	for i := len(sheet) - 1; i >= 0; i-- {
		switch ev := sheet[i].(type) {
		case domain.Begin:
			if !ev.At.After(at) {
				return StateBegun
			}
		case domain.End:
			if !ev.At.After(at) {
				return StateEnded
			}
		}
	}
	return StateUndetermined
}

// BeginAt applies a begin offset: a positive offset claims an earlier start.
func BeginAt(now time.Time, offset time.Duration) time.Time {
	return now.Add(-offset)
}

// EndAt applies an end offset: a positive offset claims a later end.
func EndAt(now time.Time, offset time.Duration) time.Time {
	return now.Add(offset)
}

// Current returns the state left by the sheet's last Begin or End and that
// event's timestamp. An event an offset placed in the future still counts.
func Current(sheet domain.Sheet) (State, time.Time) {
	for i := len(sheet) - 1; i >= 0; i-- {
		switch ev := sheet[i].(type) {
		case domain.Begin:
			return StateBegun, ev.At
		case domain.End:
			return StateEnded, ev.At
		}
	}
	return StateUndetermined, time.Time{}
}

// intervalStart returns when the open session's current interval began: its
// Begin or any later Switch, whichever is latest.
func intervalStart(sheet domain.Sheet) (time.Time, bool) {
	var latest time.Time
	for i := len(sheet) - 1; i >= 0; i-- {
		switch ev := sheet[i].(type) {
		case domain.Switch:
			if ev.At.After(latest) {
				latest = ev.At
			}
		case domain.Begin:
			if ev.At.After(latest) {
				latest = ev.At
			}
			return latest, true
		case domain.End:
			return time.Time{}, false
		}
	}
	return time.Time{}, false
}

// CheckBegin rejects a Begin while a session is open, or one placed before
// the last recorded End.
func CheckBegin(sheet domain.Sheet, ev domain.Begin) error {
	st, last := Current(sheet)
	if st == StateBegun {
		return &IllegalEventError{Event: ev, State: st, Reason: "a session is already running"}
	}
	if at := StateAt(sheet, ev.At); at == StateBegun {
		return &IllegalEventError{Event: ev, State: at, Reason: "a session is already running at that time"}
	}
	if st == StateEnded && ev.At.Before(last) {
		return &IllegalEventError{Event: ev, State: st, Reason: fmt.Sprintf("it precedes the last end at %s", last.Format(time.DateTime))}
	}
	return nil
}

// CheckEnd rejects an End when no session is open, or one placed before the
// open interval started.
func CheckEnd(sheet domain.Sheet, ev domain.End) error {
	st, _ := Current(sheet)
	switch st {
	case StateEnded:
		return &IllegalEventError{Event: ev, State: st, Reason: "the session has already ended"}
	case StateUndetermined:
		return &IllegalEventError{Event: ev, State: st, Reason: "no session has begun"}
	}
	return checkNotBeforeInterval(sheet, ev, ev.At)
}

// CheckPause rejects a Pause outside an open session or with a non-positive
// length.
func CheckPause(sheet domain.Sheet, ev domain.Pause) error {
	st, _ := Current(sheet)
	if ev.Length <= 0 {
		return &IllegalEventError{Event: ev, State: st, Reason: "pause length must be positive"}
	}
	if st != StateBegun {
		return &IllegalEventError{Event: ev, State: st, Reason: "no session is running"}
	}
	return nil
}

// checkNotBeforeInterval rejects a timestamp earlier than the open interval.
func checkNotBeforeInterval(sheet domain.Sheet, ev domain.Event, at time.Time) error {
	start, open := intervalStart(sheet)
	if open && at.Before(start) {
		return &IllegalEventError{Event: ev, State: StateBegun, Reason: fmt.Sprintf("it precedes the session start at %s", start.Format(time.DateTime))}
	}
	return nil
}

// CheckSwitch resolves the target project. A switch to the already active
// project is accepted.
func CheckSwitch(ev domain.Switch, projects domain.ProjectResolver) (domain.Project, error) {
	p, err := projects.Resolve(ev.Project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("rejected %s: %w", ev, err)
	}
	return p, nil
}

// Check dispatches on the event kind.
func Check(sheet domain.Sheet, ev domain.Event, projects domain.ProjectResolver) error {
	switch e := ev.(type) {
	case domain.Begin:
		return CheckBegin(sheet, e)
	case domain.End:
		return CheckEnd(sheet, e)
	case domain.Pause:
		return CheckPause(sheet, e)
	case domain.Switch:
		if _, err := CheckSwitch(e, projects); err != nil {
			return err
		}
		return checkNotBeforeInterval(sheet, e, e.At)
	default:
		return fmt.Errorf("%T: %w", ev, domain.ErrUnknownEvent)
	}
}
