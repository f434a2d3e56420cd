// Package trafilatura extracts the main content of press pages whose board
// layout is not recognized, using go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pressdoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pressdoc.Extractor at compile time.
var _ pressdoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. Tables and images are kept in the content
// so that table extraction and image markers still work on the result.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor for Korean-language pages.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
			IncludeImages:   true,
			TargetLanguage:  "ko",
		},
	}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*pressdoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pressdoc.Errorf(pressdoc.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &pressdoc.ExtractResult{
		Title:       pressdoc.CleanTitle(result.Metadata.Title),
		ContentHTML: contentHTML,
	}, nil
}
