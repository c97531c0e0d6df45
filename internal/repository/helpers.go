package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// timeLayout keeps the zone offset so wall-clock days survive a round trip.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// parseTime reads a stored timestamp back into the local zone when the
// offset matches it.
func parseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedSheet, s)
	}
	return t, nil
}

func nullableString(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}
