package pressdoc

import (
	"context"
	"path/filepath"
	"time"
)

// ObjectStore uploads files to object storage.
type ObjectStore interface {
	// Upload stores the local file and returns the object name.
	Upload(ctx context.Context, path string) (string, error)
}

// ObjectName returns the object name for a local file uploaded at t:
// the year and month, then the file's base name (e.g., 202312/report.json).
func ObjectName(t time.Time, path string) string {
	return t.Format("200601") + "/" + filepath.Base(path)
}
