package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pressdoc"
)

var _ pressdoc.TableNarrator = (*LoggingTableNarrator)(nil)

// LoggingTableNarrator wraps a TableNarrator with logging.
type LoggingTableNarrator struct {
	next   pressdoc.TableNarrator
	logger *slog.Logger
}

// NewLoggingTableNarrator creates a new LoggingTableNarrator.
func NewLoggingTableNarrator(next pressdoc.TableNarrator, logger *slog.Logger) *LoggingTableNarrator {
	return &LoggingTableNarrator{next: next, logger: logger}
}

func (n *LoggingTableNarrator) Narrate(ctx context.Context, table pressdoc.ParsedTable) (sentences []string, err error) {
	defer func(begin time.Time) {
		n.logger.Info("narrate table",
			"rows", len(table.Rows),
			"sentences", len(sentences),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Narrate(ctx, table)
}
