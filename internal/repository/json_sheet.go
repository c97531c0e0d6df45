package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/alexanderramin/timetrack/internal/config"
	"github.com/alexanderramin/timetrack/internal/domain"
)

// JSONSheetStore keeps a timesheet as a JSON array in a single file, the
// layout used by .time files:
//
//	[{"BEGIN": "2025-06-09T09:00:00+02:00"},
//	 {"PAUSE": {"secs": 900, "nanos": 0}},
//	 {"SWITCH": ["2025-06-09T10:00:00+02:00", {"UName": "alpha"}]},
//	 {"END": "2025-06-09T12:00:00+02:00"}]
type JSONSheetStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONSheetStore creates a store for path. The file need not exist.
func NewJSONSheetStore(path string) *JSONSheetStore {
	return &JSONSheetStore{path: path}
}

func (s *JSONSheetStore) Load(ctx context.Context) (domain.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Update serialises writers within this process only. Two processes
// updating the same file race and the last rename wins.
func (s *JSONSheetStore) Update(ctx context.Context, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(next)
}

func (s *JSONSheetStore) Describe(ctx context.Context) (SheetInfo, error) {
	sheet, err := s.Load(ctx)
	if err != nil {
		return SheetInfo{}, err
	}
	return SheetInfo{Path: s.path, Format: FormatJSON, Events: sheet.Len()}, nil
}

func (s *JSONSheetStore) Close() error { return nil }

func (s *JSONSheetStore) read() (domain.Sheet, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Sheet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading timesheet %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return domain.Sheet{}, nil
	}

	var records []jsonEvent
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("timesheet %s: %w: %v", s.path, ErrMalformedSheet, err)
	}
	sheet := make(domain.Sheet, 0, len(records))
	for i, rec := range records {
		e, err := rec.decode()
		if err != nil {
			return nil, fmt.Errorf("timesheet %s, event %d: %w", s.path, i+1, err)
		}
		sheet = append(sheet, e)
	}
	return sheet, nil
}

func (s *JSONSheetStore) write(sheet domain.Sheet) error {
	records := make([]jsonEvent, 0, len(sheet))
	for i, e := range sheet {
		rec, err := encodeJSONEvent(e)
		if err != nil {
			return fmt.Errorf("event %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding timesheet: %w", err)
	}
	return config.WriteFileAtomic(s.path, raw)
}

// jsonEvent is a single-key object naming the event kind.
type jsonEvent struct {
	Begin  *string          `json:"BEGIN,omitempty"`
	End    *string          `json:"END,omitempty"`
	Pause  *jsonDuration    `json:"PAUSE,omitempty"`
	Switch *json.RawMessage `json:"SWITCH,omitempty"`
}

type jsonDuration struct {
	Secs  int64 `json:"secs"`
	Nanos int64 `json:"nanos"`
}

type jsonProject struct {
	UName     *string `json:"UName,omitempty"`
	ProjectID *int    `json:"ProjectId,omitempty"`
}

func encodeJSONEvent(e domain.Event) (jsonEvent, error) {
	switch ev := e.(type) {
	case domain.Begin:
		at := formatTime(ev.At)
		return jsonEvent{Begin: &at}, nil
	case domain.End:
		at := formatTime(ev.At)
		return jsonEvent{End: &at}, nil
	case domain.Pause:
		d := jsonDuration{Secs: int64(ev.Length / time.Second), Nanos: int64(ev.Length % time.Second)}
		return jsonEvent{Pause: &d}, nil
	case domain.Switch:
		var p jsonProject
		if ev.Project.ByID {
			id := ev.Project.ID
			p.ProjectID = &id
		} else {
			name := ev.Project.Name
			p.UName = &name
		}
		raw, err := json.Marshal([]any{formatTime(ev.At), p})
		if err != nil {
			return jsonEvent{}, err
		}
		msg := json.RawMessage(raw)
		return jsonEvent{Switch: &msg}, nil
	default:
		return jsonEvent{}, fmt.Errorf("%w: %T", domain.ErrUnknownEvent, e)
	}
}

func (j jsonEvent) kinds() int {
	n := 0
	for _, set := range []bool{j.Begin != nil, j.End != nil, j.Pause != nil, j.Switch != nil} {
		if set {
			n++
		}
	}
	return n
}

func (j jsonEvent) decode() (domain.Event, error) {
	if j.kinds() > 1 {
		return nil, fmt.Errorf("%w: event names more than one kind", ErrMalformedSheet)
	}
	switch {
	case j.Begin != nil:
		at, err := parseTime(*j.Begin)
		if err != nil {
			return nil, err
		}
		return domain.Begin{At: at}, nil
	case j.End != nil:
		at, err := parseTime(*j.End)
		if err != nil {
			return nil, err
		}
		return domain.End{At: at}, nil
	case j.Pause != nil:
		return domain.Pause{Length: time.Duration(j.Pause.Secs)*time.Second + time.Duration(j.Pause.Nanos)}, nil
	case j.Switch != nil:
		return decodeJSONSwitch(*j.Switch)
	default:
		return nil, fmt.Errorf("%w: event has no known kind", ErrMalformedSheet)
	}
}

func decodeJSONSwitch(raw json.RawMessage) (domain.Event, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil || len(parts) != 2 {
		return nil, fmt.Errorf("%w: switch must be [time, project]", ErrMalformedSheet)
	}
	var at string
	if err := json.Unmarshal(parts[0], &at); err != nil {
		return nil, fmt.Errorf("%w: switch time: %v", ErrMalformedSheet, err)
	}
	ts, err := parseTime(at)
	if err != nil {
		return nil, err
	}
	var p jsonProject
	if err := json.Unmarshal(parts[1], &p); err != nil {
		return nil, fmt.Errorf("%w: switch project: %v", ErrMalformedSheet, err)
	}
	switch {
	case p.ProjectID != nil && p.UName != nil:
		return nil, fmt.Errorf("%w: switch names both a project id and a name", ErrMalformedSheet)
	case p.ProjectID != nil:
		return domain.Switch{At: ts, Project: domain.RefByID(*p.ProjectID)}, nil
	case p.UName != nil:
		return domain.Switch{At: ts, Project: domain.RefByName(*p.UName)}, nil
	default:
		return nil, fmt.Errorf("%w: switch names no project", ErrMalformedSheet)
	}
}
