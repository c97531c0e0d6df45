package domain

// Sheet is the ordered event log of one timesheet. Position is
// authoritative; a Sheet is only ever appended to or shortened by its last
// element.
type Sheet []Event

// Append returns a sheet with e added at the end. The receiver's backing
// array is never written to.
func (s Sheet) Append(e Event) Sheet {
	out := make(Sheet, len(s), len(s)+1)
	copy(out, s)
	return append(out, e)
}

// RemoveLast drops the most recently appended event and returns it. On an
// empty sheet it is a no-op and the returned event is nil.
func (s Sheet) RemoveLast() (Sheet, Event) {
	if len(s) == 0 {
		return s, nil
	}
	last := s[len(s)-1]
	return s[:len(s)-1:len(s)-1], last
}

// Last returns the final event, or nil.
func (s Sheet) Last() Event {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

func (s Sheet) Len() int { return len(s) }
