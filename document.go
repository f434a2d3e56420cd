package pressdoc

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Font faces that press-release templates use for headlines and body text.
const (
	HeadlineFont = "HY헤드라인M"
	BodyFont     = "휴먼명조"
)

// MetaPage is the key under which the parsing service reports
// page-independent items such as the document's metadata table.
const MetaPage = "-1"

// ParsedDocument is the layout analysis the document parsing service returns
// for an HWP file, keyed by page number.
type ParsedDocument struct {
	Pages map[string][]ParsedItem `json:"pages"`
}

// ParsedItem is a single layout element.
type ParsedItem struct {
	Class        string        `json:"class"`
	Font         string        `json:"font,omitempty"`
	FontSize     float64       `json:"font_size,omitempty"`
	Content      string        `json:"content,omitempty"`
	TableContent *TableContent `json:"table_content,omitempty"`
}

// TableContent carries a table recognized by the parsing service.
type TableContent struct {
	HTML string `json:"html"`
}

// DocumentParser converts a word-processor file into a ParsedDocument.
type DocumentParser interface {
	Parse(ctx context.Context, filename string, r io.Reader) (*ParsedDocument, error)
}

// PressText is the headline, sub-headline and body paragraphs of a press
// release recognized by font.
type PressText struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Contents []string `json:"contents"`
}

// PressMeta is the distribution metadata table of a press release.
type PressMeta struct {
	ReleaseDate  string `json:"release_date"`
	CreationDate string `json:"creation_date"`
	Department   string `json:"department"`
}

// PressInfo combines everything extracted from one HWP file.
type PressInfo struct {
	Filename string `json:"filename"`
	PressMeta
	PressText
}

// MetaTableHTML returns the first metadata table the parser reported.
func (d *ParsedDocument) MetaTableHTML() string {
	for _, item := range d.Pages[MetaPage] {
		if item.TableContent != nil && item.TableContent.HTML != "" {
			return item.TableContent.HTML
		}
	}
	return ""
}

// pageOrder returns page keys in numeric order, excluding MetaPage.
// Other negative and non-numeric keys sort last.
func (d *ParsedDocument) pageOrder() []string {
	type page struct {
		key string
		n   int
		ok  bool
	}
	var pages []page
	for k := range d.Pages {
		if k == MetaPage {
			continue
		}
		n, err := strconv.Atoi(k)
		pages = append(pages, page{key: k, n: n, ok: err == nil && n >= 0})
	}
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].ok != pages[j].ok {
			return pages[i].ok
		}
		if pages[i].n != pages[j].n {
			return pages[i].n < pages[j].n
		}
		return pages[i].key < pages[j].key
	})
	keys := make([]string, len(pages))
	for i, p := range pages {
		keys[i] = p.key
	}
	return keys
}

func (d *ParsedDocument) textItems() []ParsedItem {
	var items []ParsedItem
	for _, k := range d.pageOrder() {
		for _, item := range d.Pages[k] {
			if item.Class == "Text" {
				items = append(items, item)
			}
		}
	}
	return items
}

func isTitle(item ParsedItem) bool {
	return item.Font == HeadlineFont && item.FontSize >= 17.5 && item.FontSize <= 22
}

func isSubtitle(item ParsedItem) bool {
	return item.Font == HeadlineFont && item.FontSize >= 13.5 && item.FontSize < 17.5
}

// ExtractPressText recognizes the headline (HY헤드라인M, 17.5-22pt),
// sub-headline (HY헤드라인M, 13.5-17.5pt) and body paragraphs (휴먼명조).
// Only the first headline and sub-headline count; a headline ending in ","
// or a sub-headline ending in "…" continues with the next distinct text of
// the same kind.
func ExtractPressText(doc *ParsedDocument) PressText {
	var text PressText
	if doc == nil {
		return text
	}

	items := doc.textItems()
	for _, item := range items {
		content := strings.TrimSpace(item.Content)
		if content == "" {
			continue
		}
		switch {
		case isTitle(item):
			if text.Title == "" {
				text.Title = content
			}
		case isSubtitle(item):
			if text.Subtitle == "" {
				text.Subtitle = content
			}
		case item.Font == BodyFont:
			text.Contents = append(text.Contents, content)
		}
	}

	if strings.HasSuffix(text.Title, ",") {
		text.Title = continueLine(items, text.Title, isTitle)
	}
	if strings.HasSuffix(text.Subtitle, "…") {
		text.Subtitle = continueLine(items, text.Subtitle, isSubtitle)
	}
	return text
}

func continueLine(items []ParsedItem, line string, match func(ParsedItem) bool) string {
	for _, item := range items {
		if !match(item) {
			continue
		}
		next := strings.TrimSpace(item.Content)
		if next != "" && next != line {
			return line + " " + next
		}
	}
	return line
}

// DocumentSummary is one row of the document list export.
type DocumentSummary struct {
	Filename string
	Date     string
	Title    string
}

var dateRe = regexp.MustCompile(`(\d{4})\D{1,3}(\d{1,2})\D{1,3}(\d{1,2})`)

// NormalizeDate converts dates such as "2023. 12. 31." or "2023.12.31" into
// "2023-12-31". Returns an empty string if no date is recognized.
func NormalizeDate(s string) string {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	return fmt.Sprintf("%s-%02d-%02d", m[1], month, day)
}

// Summary returns the export row for the press info. The release date is
// preferred over the creation date.
func (p *PressInfo) Summary() DocumentSummary {
	date := NormalizeDate(p.ReleaseDate)
	if date == "" {
		date = NormalizeDate(p.CreationDate)
	}
	return DocumentSummary{Filename: p.Filename, Date: date, Title: p.Title}
}

// Summary returns the export row for the article, keyed by URL.
func (a *Article) Summary() DocumentSummary {
	return DocumentSummary{Filename: a.URL, Date: NormalizeDate(a.Date), Title: a.Title}
}

// DocumentExporter writes a document list to a file.
type DocumentExporter interface {
	Export(path string, docs []DocumentSummary) error
}
