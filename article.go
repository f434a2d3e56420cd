package pressdoc

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// Article is a parsed press release.
type Article struct {
	ID    string        `json:"-"`
	Title string        `json:"title"`
	Date  string        `json:"date"`
	URL   string        `json:"url"`
	Body  *BodySegments `json:"body,omitempty"`
	// Tables are referenced from Body.Content by {tableN} placeholders.
	Tables []ArticleTable `json:"tables"`

	Attachments []Attachment `json:"attachments,omitempty"`

	// Error records why the article could not be parsed. Failed articles
	// keep their listing title and URL.
	Error string `json:"error,omitempty"`

	ContentHash string    `json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// ArticleTable is one table found in an article body.
type ArticleTable struct {
	HTML string `json:"table_html"`
	Text string `json:"table_text"`
	// Data is the normalized grid with the header as the first row.
	Data [][]string `json:"table_data"`
}

// Parsed splits Data back into a header and rows.
func (t ArticleTable) Parsed() ParsedTable {
	if len(t.Data) == 0 {
		return ParsedTable{Header: []string{}, Rows: [][]string{}}
	}
	return ParsedTable{Header: t.Data[0], Rows: t.Data[1:]}
}

// Attachment is a downloadable file linked from an article.
type Attachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	// Type is the lowercase file extension.
	Type string `json:"type"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	return nil
}

// Failed reports whether the article records a parse failure.
func (a *Article) Failed() bool {
	return a.Error != ""
}

// ContentJSON returns the JSON of the parsed content, body and tables, which
// is what content hashes are computed over.
func (a *Article) ContentJSON() ([]byte, error) {
	return json.Marshal(struct {
		Body   *BodySegments  `json:"body"`
		Tables []ArticleTable `json:"tables"`
	}{a.Body, a.Tables})
}

// ArticleService represents a service for managing articles.
type ArticleService interface {
	// CreateArticle stores a new article.
	// Returns ECONFLICT if an article with the same URL exists.
	CreateArticle(ctx context.Context, article *Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticle permanently removes an article.
	// Returns ENOTFOUND if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ArticleParser turns a fetched article page into an Article.
type ArticleParser interface {
	Parse(html string, url string) (*Article, error)
}

var (
	titleSuffixRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s*작성일\s*\d{4}\.\d{2}\.\d{2}\s*조회수\s*\d+.*$`),
		regexp.MustCompile(`(?i)\s*작성일\s*\d{4}\.\d{2}\.\d{2}.*$`),
		regexp.MustCompile(`(?i)\s*조회수\s*\d+.*$`),
	}
	titleBeforeDateRe = regexp.MustCompile(`^(.+?)\s*작성일\s*\d{4}\.\d{2}\.\d{2}`)
)

// CleanTitle strips the "작성일 YYYY.MM.DD" and "조회수 N" trailers that board
// pages render next to the title.
func CleanTitle(title string) string {
	for _, re := range titleSuffixRes {
		title = re.ReplaceAllString(title, "")
	}
	return strings.TrimSpace(title)
}

// ExtractTitleFromContent derives a title from the first line of the body
// text: everything before a "작성일" date, or the whole line.
func ExtractTitleFromContent(content string) string {
	if content == "" {
		return ""
	}
	first, _, _ := strings.Cut(content, "\n")
	first = strings.TrimSpace(first)
	if m := titleBeforeDateRe.FindStringSubmatch(first); m != nil {
		return CleanTitle(strings.TrimSpace(m[1]))
	}
	return CleanTitle(first)
}
