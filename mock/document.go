package mock

import (
	"context"
	"io"

	"github.com/fwojciec/pressdoc"
)

var _ pressdoc.DocumentParser = (*DocumentParser)(nil)

// DocumentParser is a mock implementation of pressdoc.DocumentParser.
type DocumentParser struct {
	ParseFn func(ctx context.Context, filename string, r io.Reader) (*pressdoc.ParsedDocument, error)
}

func (p *DocumentParser) Parse(ctx context.Context, filename string, r io.Reader) (*pressdoc.ParsedDocument, error) {
	return p.ParseFn(ctx, filename, r)
}

var _ pressdoc.DocumentExporter = (*DocumentExporter)(nil)

// DocumentExporter is a mock implementation of pressdoc.DocumentExporter.
type DocumentExporter struct {
	ExportFn func(path string, docs []pressdoc.DocumentSummary) error
}

func (e *DocumentExporter) Export(path string, docs []pressdoc.DocumentSummary) error {
	return e.ExportFn(path, docs)
}
