package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoad_MissingFileIsDefault(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope", "config.yaml"))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, cfg.Registry())
}

func TestStoreLoad_EmptyFileIsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o644))

	cfg, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestStoreLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects: [oops"), 0o644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedConfig)
}

func TestStoreLoad_IgnoresOutputSelector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "timesheet: /tmp/work.time\ndefault_output: MSDynamics\nprojects:\n  - id: 4\n    name: alpha\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/work.time", cfg.Timesheet)
	require.Len(t, cfg.Registry(), 1)

	require.NoError(t, NewStore(path).Save(cfg))
	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(saved), "default_output")
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	store := NewStore(path)

	cfg := &Config{Timesheet: "/tmp/work.db"}
	cfg.AddProject(domain.Project{ID: 1, Name: "internal", Category: "overhead"})
	cfg.AddProject(domain.Project{ID: 2, Name: "website", Description: "Client site"})
	require.NoError(t, store.Save(cfg))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/work.db", loaded.Timesheet)

	reg := loaded.Registry()
	require.Len(t, reg, 2)
	assert.Equal(t, domain.Project{ID: 2, Name: "website", Description: "Client site"}, reg[1])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStoreLoad_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timesheet: ~/sheets/work.db\n"), 0o644))

	cfg, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sheets", "work.db"), cfg.Timesheet)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("TT_CONFIG", "/etc/tt.yaml")
	t.Setenv("TT_TIMESHEET", "/data/sheet.json")
	t.Setenv("TT_VERBOSE", "true")

	e, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, Env{ConfigPath: "/etc/tt.yaml", Timesheet: "/data/sheet.json", Verbose: true}, e)

	cfg := Default()
	cfg.Apply(e)
	assert.Equal(t, "/data/sheet.json", cfg.Timesheet)
}

func TestLoadEnv_BadBool(t *testing.T) {
	t.Setenv("TT_VERBOSE", "sometimes")
	_, err := LoadEnv()
	require.Error(t, err)
}
