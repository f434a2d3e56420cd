// Package readability extracts the main content of press pages using
// go-readability. It backs up the trafilatura extractor for pages the board
// parser does not recognize.
package readability

import (
	"strings"

	"github.com/fwojciec/pressdoc"
	"github.com/go-shiori/go-readability"
)

var _ pressdoc.Extractor = (*Extractor)(nil)

// titleSeparators split a page title from the site name board pages append.
var titleSeparators = []string{" | ", " - ", " :: ", " < "}

// Extractor wraps go-readability.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the readable part of the page. A page without readable
// text yields an empty result so that callers can try another extractor.
func (e *Extractor) Extract(rawHTML string) (*pressdoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pressdoc.Errorf(pressdoc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	result := &pressdoc.ExtractResult{
		Title: pressdoc.CleanTitle(trimSiteName(article.Title, article.SiteName)),
	}
	if strings.TrimSpace(article.TextContent) != "" {
		result.ContentHTML = article.Content
	}
	return result, nil
}

// trimSiteName drops the title segment naming the site, such as
// "보도자료 | 인천국제공항공사".
func trimSiteName(title, siteName string) string {
	title = strings.TrimSpace(title)
	siteName = strings.TrimSpace(siteName)
	for _, sep := range titleSeparators {
		parts := strings.Split(title, sep)
		if len(parts) < 2 {
			continue
		}
		kept := parts[:0]
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" || (siteName != "" && p == siteName) {
				continue
			}
			kept = append(kept, p)
		}
		if siteName == "" && len(kept) > 1 {
			kept = kept[:len(kept)-1]
		}
		return strings.Join(kept, sep)
	}
	return title
}
