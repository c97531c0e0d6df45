package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspose(t *testing.T) {
	w := Week{Year: 2025, Number: 24}
	w.Days[mon] = map[int]time.Duration{3: time.Hour, 1: 2 * time.Hour}
	w.Days[wed] = map[int]time.Duration{1: 30 * time.Minute}
	w.Days[sun] = map[int]time.Duration{0: 15 * time.Minute}

	tbl := Transpose(w)

	assert.Equal(t, 2025, tbl.Year)
	assert.Equal(t, 24, tbl.Number)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []int{0, 1, 3}, []int{tbl.Rows[0].ProjectID, tbl.Rows[1].ProjectID, tbl.Rows[2].ProjectID})

	one, ok := tbl.Row(1)
	require.True(t, ok)
	assert.Equal(t, 2*time.Hour, one.Days[mon])
	assert.Equal(t, 30*time.Minute, one.Days[wed])
	assert.Equal(t, 2*time.Hour+30*time.Minute, one.Total)

	assert.Equal(t, 3*time.Hour, tbl.DayTotals[mon])
	assert.Equal(t, 30*time.Minute, tbl.DayTotals[wed])
	assert.Equal(t, 15*time.Minute, tbl.DayTotals[sun])
	assert.Equal(t, 3*time.Hour+45*time.Minute, tbl.Total)

	_, ok = tbl.Row(2)
	assert.False(t, ok)
}

func TestTranspose_TotalsMatchWeek(t *testing.T) {
	sheet := fixtureWeek(t)
	tbl := Transpose(sheet)

	for d := range sheet.Days {
		assert.Equal(t, sheet.DayTotal(d), tbl.DayTotals[d], "weekday %d", d)
	}
	assert.Equal(t, sheet.Total(), tbl.Total)

	var rows time.Duration
	for _, r := range tbl.Rows {
		rows += r.Total
	}
	assert.Equal(t, tbl.Total, rows)
}

func TestTranspose_EmptyWeek(t *testing.T) {
	tbl := Transpose(Week{Year: 2025, Number: 1})
	assert.Empty(t, tbl.Rows)
	assert.Zero(t, tbl.Total)
}

func fixtureWeek(t *testing.T) Week {
	t.Helper()
	res := aggregate(t, scenarioWeek(), later)
	require.Len(t, res.Weeks, 1)
	return res.Weeks[0]
}
