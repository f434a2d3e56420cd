package mock

import "github.com/fwojciec/pressdoc"

var (
	_ pressdoc.Extractor = (*Extractor)(nil)
	_ pressdoc.Converter = (*Converter)(nil)
)

// Extractor mocks the main-content extractors used for unrecognized pages.
type Extractor struct {
	ExtractFn func(html string) (*pressdoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*pressdoc.ExtractResult, error) {
	return e.ExtractFn(html)
}

// Converter mocks the HTML to markdown converter behind the preview command.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
