package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type sheetChangedMsg struct{}

type watchErrMsg struct{ err error }

// sheetWatcher turns writes to the timesheet file into tea messages. The
// directory is watched because the JSON store replaces the file by rename.
type sheetWatcher struct {
	w     *fsnotify.Watcher
	names map[string]bool
}

func newSheetWatcher(path string) (*sheetWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}
	base := filepath.Base(path)
	return &sheetWatcher{
		w: w,
		// SQLite commits land in the WAL or rollback journal first.
		names: map[string]bool{base: true, base + "-wal": true, base + "-journal": true},
	}, nil
}

func (s *sheetWatcher) relevant(ev fsnotify.Event) bool {
	if !s.names[filepath.Base(ev.Name)] {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

// next blocks until the sheet changes. It returns nil once the watcher is
// closed.
func (s *sheetWatcher) next() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-s.w.Events:
				if !ok {
					return nil
				}
				if s.relevant(ev) {
					return sheetChangedMsg{}
				}
			case err, ok := <-s.w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (s *sheetWatcher) Close() error {
	return s.w.Close()
}
