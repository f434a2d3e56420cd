package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pressdoc"
)

// ArticleHash hashes the parsed content of an article (body and tables) so
// that re-crawled articles can be compared with stored ones.
func ArticleHash(a *pressdoc.Article) string {
	content, err := a.ContentJSON()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}
