package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pressdoc"
)

var _ pressdoc.DocumentParser = (*LoggingDocumentParser)(nil)

// LoggingDocumentParser wraps a DocumentParser with logging.
type LoggingDocumentParser struct {
	next   pressdoc.DocumentParser
	logger *slog.Logger
}

// NewLoggingDocumentParser creates a new LoggingDocumentParser.
func NewLoggingDocumentParser(next pressdoc.DocumentParser, logger *slog.Logger) *LoggingDocumentParser {
	return &LoggingDocumentParser{next: next, logger: logger}
}

// Parse logs the file name and the number of pages the service reported.
func (p *LoggingDocumentParser) Parse(ctx context.Context, filename string, r io.Reader) (doc *pressdoc.ParsedDocument, err error) {
	defer func(begin time.Time) {
		pages := 0
		if doc != nil {
			pages = len(doc.Pages)
		}
		p.logger.Info("parse document",
			"file", filename,
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(ctx, filename, r)
}
