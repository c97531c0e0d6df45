package repository

import (
	"path/filepath"
	"strings"
)

// OpenSheetRepo picks the store for path by extension: .json and .time
// files use the JSON layout, anything else is a SQLite database.
func OpenSheetRepo(path string) (SheetRepo, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".time":
		return NewJSONSheetStore(path), nil
	default:
		return OpenSQLiteSheetStore(path)
	}
}
