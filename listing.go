package pressdoc

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

// ListingItem is one entry of a press board's list page.
type ListingItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Board describes a press-release board on a site.
type Board struct {
	// BaseURL resolves relative article links (e.g., https://www.airport.kr).
	BaseURL string `yaml:"base_url"`

	// ListURL is the first list page.
	ListURL string `yaml:"list_url"`

	// Path is the board path shared by list and article links
	// (e.g., /bbs/co_ko/84/).
	Path string `yaml:"board_path"`
}

// listFunction is the board function marker that precedes the encoded list
// path inside the enc parameter.
const listFunction = "fnct1|@@|"

// PageURL returns the URL of a list page. The first page is ListURL itself;
// later pages pass the inner list path through the enc parameter as base64
// of the function marker followed by the percent-encoded path.
func (b Board) PageURL(page int) string {
	if page <= 1 {
		return b.ListURL
	}
	path := b.Path
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	inner := fmt.Sprintf("%sartclList.do?page=%d&findType=&findWord=&findClSeq=&findOpnwrd=&rgsBgndeStr=&rgsEnddeStr=&tempRow=&", path, page)
	enc := base64.StdEncoding.EncodeToString([]byte(listFunction + quote(inner)))
	return b.ListURL + "?enc=" + quote(enc)
}

// quote percent-encodes every byte except ASCII letters, digits and "_.-~".
// Reserved characters such as "/", "&" and "=" are encoded too.
func quote(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
			c == '_' || c == '.' || c == '-' || c == '~' {
			sb.WriteByte(c)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", c)
	}
	return sb.String()
}

// ArticleIDPattern returns a pattern whose first group captures the article
// ID from an article view link.
func (b Board) ArticleIDPattern() *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(b.Path) + `(\d+)/artclView\.do`)
}

// ArticleID extracts the article ID from an article URL.
// Returns an empty string if the URL is not an article view link.
func (b Board) ArticleID(url string) string {
	m := b.ArticleIDPattern().FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// ListingParser extracts article entries from a list page.
type ListingParser interface {
	ParseListing(html string, board Board) ([]ListingItem, error)
}
