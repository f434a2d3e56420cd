package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pressdoc"
)

var _ pressdoc.ObjectStore = (*LoggingObjectStore)(nil)

// LoggingObjectStore wraps an ObjectStore with logging.
type LoggingObjectStore struct {
	next   pressdoc.ObjectStore
	logger *slog.Logger
}

// NewLoggingObjectStore creates a new LoggingObjectStore.
func NewLoggingObjectStore(next pressdoc.ObjectStore, logger *slog.Logger) *LoggingObjectStore {
	return &LoggingObjectStore{next: next, logger: logger}
}

// Upload logs the local path and the resulting object name.
func (s *LoggingObjectStore) Upload(ctx context.Context, path string) (name string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("upload",
			"path", path,
			"object", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Upload(ctx, path)
}
