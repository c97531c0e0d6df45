package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0m"},
		{-time.Hour, "0m"},
		{29 * time.Second, "0m"},
		{30 * time.Second, "1m"},
		{45 * time.Minute, "45m"},
		{2 * time.Hour, "2h"},
		{7*time.Hour + 30*time.Minute, "7h 30m"},
		{26*time.Hour + 5*time.Minute, "26h 5m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestHumanDateFrom(t *testing.T) {
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", HumanDateFrom(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Yesterday", HumanDateFrom(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "Mon Jun 9, 2025", HumanDateFrom(now.AddDate(0, 0, -2), now))
}

func TestRenderAlignedTable(t *testing.T) {
	out := stripANSI(RenderAlignedTable(
		[]string{"NAME", "HOURS"},
		[][]string{{"a", "1h"}, nil, {"total", "10h"}},
		[]Align{AlignLeft, AlignRight},
	))

	assert.Equal(t, ""+
		"NAME   HOURS\n"+
		"─────  ─────\n"+
		"a         1h\n"+
		"─────  ─────\n"+
		"total    10h\n", out)
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}
