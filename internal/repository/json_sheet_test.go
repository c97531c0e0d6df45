package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSheetStore_MissingFileIsEmpty(t *testing.T) {
	store := NewJSONSheetStore(filepath.Join(t.TempDir(), "Timesheet.time"))

	sheet, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sheet)
}

func TestJSONSheetStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Timesheet.time")
	store := NewJSONSheetStore(path)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, func(domain.Sheet) (domain.Sheet, error) {
		return sampleSheet(), nil
	}))

	got, err := NewJSONSheetStore(path).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(sampleSheet(), got))

	info, err := store.Describe(ctx)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, info.Format)
	assert.Equal(t, 5, info.Events)
}

func TestJSONSheetStore_ReadsExistingLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Timesheet.time")
	raw := `[
  {"BEGIN": "2025-06-09T09:00:00+02:00"},
  {"PAUSE": {"secs": 900, "nanos": 500}},
  {"SWITCH": ["2025-06-09T10:00:00+02:00", {"UName": "alpha"}]},
  {"SWITCH": ["2025-06-09T11:00:00+02:00", {"ProjectId": 7}]},
  {"END": "2025-06-09T12:00:00+02:00"}
]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	sheet, err := NewJSONSheetStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, sheet, 5)

	zone := time.FixedZone("", 2*60*60)
	begin, ok := sheet[0].(domain.Begin)
	require.True(t, ok)
	assert.True(t, begin.At.Equal(time.Date(2025, 6, 9, 9, 0, 0, 0, zone)))

	assert.Equal(t, domain.Pause{Length: 15*time.Minute + 500}, sheet[1])

	sw, ok := sheet[2].(domain.Switch)
	require.True(t, ok)
	assert.Equal(t, domain.RefByName("alpha"), sw.Project)

	sw, ok = sheet[3].(domain.Switch)
	require.True(t, ok)
	assert.Equal(t, domain.RefByID(7), sw.Project)

	_, ok = sheet[4].(domain.End)
	assert.True(t, ok)
}

func TestJSONSheetStore_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":       `[{"BEGIN": `,
		"unknown kind":   `[{"LUNCH": "2025-06-09T09:00:00Z"}]`,
		"bad timestamp":  `[{"BEGIN": "monday"}]`,
		"switch shape":   `[{"SWITCH": "2025-06-09T09:00:00Z"}]`,
		"switch project": `[{"SWITCH": ["2025-06-09T09:00:00Z", {}]}]`,
		"two kinds":      `[{"BEGIN": "2025-06-09T09:00:00Z", "END": "2025-06-09T10:00:00Z"}]`,
		"pause and end":  `[{"PAUSE": {"secs": 60, "nanos": 0}, "END": "2025-06-09T10:00:00Z"}]`,
		"id and name":    `[{"SWITCH": ["2025-06-09T09:00:00Z", {"UName": "alpha", "ProjectId": 2}]}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.json")
			require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

			_, err := NewJSONSheetStore(path).Load(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedSheet)
		})
	}
}

func TestJSONSheetStore_RejectedUpdateLeavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Timesheet.time")
	store := NewJSONSheetStore(path)
	ctx := context.Background()

	err := store.Update(ctx, func(domain.Sheet) (domain.Sheet, error) {
		return nil, assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written")
}

func TestOpenSheetRepo_PicksStoreByExtension(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.json", "b.time", "c.TIME"} {
		repo, err := OpenSheetRepo(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.IsType(t, &JSONSheetStore{}, repo, name)
		require.NoError(t, repo.Close())
	}

	repo, err := OpenSheetRepo(filepath.Join(dir, "d.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteSheetStore{}, repo)
	require.NoError(t, repo.Close())
}
