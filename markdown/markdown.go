// Package markdown renders articles and tables as Markdown documents using
// github.com/nao1215/markdown.
package markdown

import (
	"bytes"
	"io"
	"strings"

	"github.com/fwojciec/pressdoc"
	md "github.com/nao1215/markdown"
)

// Ensure Formatter implements pressdoc.ArticleFormatter at compile time.
var _ pressdoc.ArticleFormatter = (*Formatter)(nil)

// Formatter renders articles as Markdown.
type Formatter struct{}

// NewFormatter creates a new Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatArticle renders the title as H1, headers as H2 and sub-headers as
// H3, followed by the content sentences. Each {tableN} placeholder becomes
// the table at that index.
func (f *Formatter) FormatArticle(a *pressdoc.Article) (string, error) {
	var buf bytes.Buffer
	if err := WriteArticle(&buf, a); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteArticle writes an article as Markdown to w.
func WriteArticle(w io.Writer, a *pressdoc.Article) error {
	doc := md.NewMarkdown(w)
	doc.H1(a.Title)
	if a.Date != "" {
		doc.PlainText("")
		doc.PlainText(a.Date)
	}

	if a.Body != nil {
		for _, h := range a.Body.Header {
			doc.PlainText("")
			doc.H2(h)
		}
		for _, h := range a.Body.SubHeader {
			doc.PlainText("")
			doc.H3(h)
		}
		for _, s := range a.Body.Content {
			doc.PlainText("")
			if n, ok := pressdoc.TableIndex(s); ok && n < len(a.Tables) {
				writeTable(doc, a.Tables[n].Data)
				continue
			}
			doc.PlainText(s)
		}
	}

	if len(a.Attachments) > 0 {
		doc.PlainText("")
		doc.H2("첨부파일")
		doc.PlainText("")
		links := make([]string, len(a.Attachments))
		for i, att := range a.Attachments {
			links[i] = md.Link(att.Filename, att.URL)
		}
		doc.BulletList(links...)
	}
	return doc.Build()
}

// WriteTable writes a normalized table as a Markdown table to w. An empty
// header renders as a blank header row.
func WriteTable(w io.Writer, t pressdoc.ParsedTable) error {
	doc := md.NewMarkdown(w)
	writeTable(doc, t.Flatten())
	return doc.Build()
}

func writeTable(doc *md.Markdown, data [][]string) {
	if len(data) == 0 {
		return
	}
	width := 0
	for _, row := range data {
		width = max(width, len(row))
	}
	rows := make([][]string, len(data))
	for i, row := range data {
		cells := make([]string, width)
		for j, cell := range row {
			cells[j] = escapeCell(cell)
		}
		rows[i] = cells
	}
	doc.Table(md.TableSet{Header: rows[0], Rows: rows[1:]})
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func escapeCell(s string) string {
	return cellReplacer.Replace(s)
}
