package pressdoc

import (
	"regexp"
	"strconv"
	"strings"
)

// ArticleFormatter renders an article as a document.
type ArticleFormatter interface {
	FormatArticle(a *Article) (string, error)
}

var placeholderRe = regexp.MustCompile(`^\{table(\d+)\}$`)

// TableIndex returns the position in Article.Tables of a {tableN}
// placeholder. Placeholders count from 1, so {table1} yields 0.
func TableIndex(s string) (int, bool) {
	m := placeholderRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// FormatArticleText renders an article as plain text: title and date, then
// headers, sub-headers and content with each {tableN} placeholder replaced
// by that table's text. Placeholders without a matching table are kept.
func FormatArticleText(a *Article) string {
	var lines []string
	lines = append(lines, a.Title)
	if a.Date != "" {
		lines = append(lines, a.Date)
	}
	if a.Body != nil {
		lines = append(lines, a.Body.Header...)
		lines = append(lines, a.Body.SubHeader...)
		for _, s := range a.Body.Content {
			if n, ok := TableIndex(s); ok && n < len(a.Tables) {
				lines = append(lines, a.Tables[n].Text)
				continue
			}
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n\n")
}
